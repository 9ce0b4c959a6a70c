package dosing

type Calculator struct {
	Slug  string `json:"slug"`
	Title string `json:"title"`
	Group string `json:"group"`
	Path  string `json:"path"`
}

var catalog = []Calculator{
	{Slug: "crrt-fluid-planning", Title: "CRRT Fluid Planning", Group: "CRRT", Path: "/api/v1/crrt/fluid-planning"},
	{Slug: "crrt-hyponatremia", Title: "CRRT Hyponatremia", Group: "CRRT", Path: "/api/v1/crrt/hyponatremia"},
	{Slug: "hd-hyponatremia", Title: "HD Sodium Change", Group: "Sodium", Path: "/api/v1/hd/hyponatremia"},
	{Slug: "electrolyte-free-water", Title: "Electrolyte Free Water Clearance", Group: "Sodium", Path: "/api/v1/electrolyte-free-water"},
}

func Catalog() []Calculator {
	return append([]Calculator(nil), catalog...)
}
