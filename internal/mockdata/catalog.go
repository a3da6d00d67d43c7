package mockdata

// Regions covered by the generated roles and rate cards.
var Regions = []string{"APAC", "EMEA", "LATAM", "North America"}

var vendorCatalog = []struct {
	name string
	tier string
}{
	{"Apex Talent Partners", "Tier 1"},
	{"BrightPath Staffing", "Tier 1"},
	{"Cobalt Recruiting", "Tier 2"},
	{"Delta Hire Group", "Tier 2"},
	{"Evergreen Search", "Tier 1"},
	{"Falcon Workforce", "Tier 3"},
	{"Granite Talent", "Tier 2"},
	{"Horizon Interviewing", "Tier 3"},
	{"Ironwood Consulting", "Tier 2"},
	{"Juniper Sourcing", "Tier 3"},
	{"Keystone Staffing", "Tier 1"},
	{"Lumen Recruit", "Tier 3"},
}

var familyCatalog = []struct {
	id   string
	name string
}{
	{"jf-eng", "Engineering"},
	{"jf-data", "Data & Analytics"},
	{"jf-product", "Product"},
	{"jf-design", "Design"},
	{"jf-sales", "Sales"},
	{"jf-cs", "Customer Success"},
	{"jf-ops", "Operations"},
}

var roleCatalog = []struct {
	name     string
	familyID string
	level    string
	location string
}{
	{"Backend Engineer", "jf-eng", "Senior", "North America"},
	{"Frontend Engineer", "jf-eng", "Mid", "EMEA"},
	{"Site Reliability Engineer", "jf-eng", "Senior", "APAC"},
	{"Mobile Engineer", "jf-eng", "Mid", "LATAM"},
	{"Data Scientist", "jf-data", "Senior", "North America"},
	{"Data Engineer", "jf-data", "Mid", "EMEA"},
	{"Analytics Engineer", "jf-data", "Mid", "APAC"},
	{"Product Manager", "jf-product", "Senior", "North America"},
	{"Technical Program Manager", "jf-product", "Staff", "EMEA"},
	{"Product Designer", "jf-design", "Mid", "North America"},
	{"UX Researcher", "jf-design", "Senior", "EMEA"},
	{"Account Executive", "jf-sales", "Mid", "North America"},
	{"Sales Development Rep", "jf-sales", "Junior", "LATAM"},
	{"Customer Success Manager", "jf-cs", "Mid", "APAC"},
	{"Support Engineer", "jf-cs", "Junior", "LATAM"},
	{"Recruiting Coordinator", "jf-ops", "Junior", "North America"},
	{"Finance Analyst", "jf-ops", "Mid", "EMEA"},
	{"Operations Manager", "jf-ops", "Senior", "APAC"},
}

// roleCategories are the pricing categories used on rate cards.
var roleCategories = []string{"Engineering", "Business", "Operations"}

var regionCurrency = map[string]string{
	"APAC":          "SGD",
	"EMEA":          "EUR",
	"LATAM":         "USD",
	"North America": "USD",
}

// tierFeeBase is the placement fee midpoint per vendor tier.
var tierFeeBase = map[string]float64{
	"Tier 1": 22000,
	"Tier 2": 16000,
	"Tier 3": 11000,
}
