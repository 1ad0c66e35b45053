package airports

// Static ISO-3166 alpha-2 lookup tables used to fold the flat provider
// airport list into the continent -> country directory. Codes missing from
// these maps land in the "Other" bucket.

const (
	ContinentEurope       = "Europe"
	ContinentAsia         = "Asia"
	ContinentAfrica       = "Africa"
	ContinentNorthAmerica = "North America"
	ContinentSouthAmerica = "South America"
	ContinentOceania      = "Oceania"
	ContinentOther        = "Other"
)

var countryNames = map[string]string{
	// Europe
	"AD": "Andorra", "AL": "Albania", "AT": "Austria", "BA": "Bosnia and Herzegovina",
	"BE": "Belgium", "BG": "Bulgaria", "BY": "Belarus", "CH": "Switzerland",
	"CY": "Cyprus", "CZ": "Czechia", "DE": "Germany", "DK": "Denmark",
	"EE": "Estonia", "ES": "Spain", "FI": "Finland", "FO": "Faroe Islands",
	"FR": "France", "GB": "United Kingdom", "GI": "Gibraltar", "GR": "Greece",
	"HR": "Croatia", "HU": "Hungary", "IE": "Ireland", "IS": "Iceland",
	"IT": "Italy", "LI": "Liechtenstein", "LT": "Lithuania", "LU": "Luxembourg",
	"LV": "Latvia", "MC": "Monaco", "MD": "Moldova", "ME": "Montenegro",
	"MK": "North Macedonia", "MT": "Malta", "NL": "Netherlands", "NO": "Norway",
	"PL": "Poland", "PT": "Portugal", "RO": "Romania", "RS": "Serbia",
	"RU": "Russia", "SE": "Sweden", "SI": "Slovenia", "SK": "Slovakia",
	"SM": "San Marino", "UA": "Ukraine", "VA": "Vatican City", "XK": "Kosovo",

	// Asia
	"AE": "United Arab Emirates", "AF": "Afghanistan", "AM": "Armenia",
	"AZ": "Azerbaijan", "BD": "Bangladesh", "BH": "Bahrain", "BN": "Brunei",
	"BT": "Bhutan", "CN": "China", "GE": "Georgia", "HK": "Hong Kong",
	"ID": "Indonesia", "IL": "Israel", "IN": "India", "IQ": "Iraq",
	"IR": "Iran", "JO": "Jordan", "JP": "Japan", "KG": "Kyrgyzstan",
	"KH": "Cambodia", "KP": "North Korea", "KR": "South Korea",
	"KW": "Kuwait", "KZ": "Kazakhstan", "LA": "Laos", "LB": "Lebanon",
	"LK": "Sri Lanka", "MM": "Myanmar", "MN": "Mongolia", "MO": "Macao",
	"MV": "Maldives", "MY": "Malaysia", "NP": "Nepal", "OM": "Oman",
	"PH": "Philippines", "PK": "Pakistan", "PS": "Palestine", "QA": "Qatar",
	"SA": "Saudi Arabia", "SG": "Singapore", "SY": "Syria", "TH": "Thailand",
	"TJ": "Tajikistan", "TL": "Timor-Leste", "TM": "Turkmenistan",
	"TR": "Turkey", "TW": "Taiwan", "UZ": "Uzbekistan", "VN": "Vietnam",
	"YE": "Yemen",

	// Africa
	"AO": "Angola", "BF": "Burkina Faso", "BI": "Burundi", "BJ": "Benin",
	"BW": "Botswana", "CD": "DR Congo", "CF": "Central African Republic",
	"CG": "Congo", "CI": "Ivory Coast", "CM": "Cameroon", "CV": "Cape Verde",
	"DJ": "Djibouti", "DZ": "Algeria", "EG": "Egypt", "EH": "Western Sahara",
	"ER": "Eritrea", "ET": "Ethiopia", "GA": "Gabon", "GH": "Ghana",
	"GM": "Gambia", "GN": "Guinea", "GQ": "Equatorial Guinea",
	"GW": "Guinea-Bissau", "KE": "Kenya", "KM": "Comoros", "LR": "Liberia",
	"LS": "Lesotho", "LY": "Libya", "MA": "Morocco", "MG": "Madagascar",
	"ML": "Mali", "MR": "Mauritania", "MU": "Mauritius", "MW": "Malawi",
	"MZ": "Mozambique", "NA": "Namibia", "NE": "Niger", "NG": "Nigeria",
	"RE": "Reunion", "RW": "Rwanda", "SC": "Seychelles", "SD": "Sudan",
	"SL": "Sierra Leone", "SN": "Senegal", "SO": "Somalia", "SS": "South Sudan",
	"ST": "Sao Tome and Principe", "SZ": "Eswatini", "TD": "Chad", "TG": "Togo",
	"TN": "Tunisia", "TZ": "Tanzania", "UG": "Uganda", "YT": "Mayotte",
	"ZA": "South Africa", "ZM": "Zambia", "ZW": "Zimbabwe",

	// North America, Central America, Caribbean
	"AG": "Antigua and Barbuda", "AI": "Anguilla", "AW": "Aruba", "BB": "Barbados",
	"BM": "Bermuda", "BS": "Bahamas", "BZ": "Belize", "CA": "Canada",
	"CR": "Costa Rica", "CU": "Cuba", "CW": "Curacao", "DM": "Dominica",
	"DO": "Dominican Republic", "GD": "Grenada", "GL": "Greenland",
	"GP": "Guadeloupe", "GT": "Guatemala", "HN": "Honduras", "HT": "Haiti",
	"JM": "Jamaica", "KN": "Saint Kitts and Nevis", "KY": "Cayman Islands",
	"LC": "Saint Lucia", "MQ": "Martinique", "MS": "Montserrat", "MX": "Mexico",
	"NI": "Nicaragua", "PA": "Panama", "PM": "Saint Pierre and Miquelon",
	"PR": "Puerto Rico", "SV": "El Salvador", "SX": "Sint Maarten",
	"TC": "Turks and Caicos Islands", "TT": "Trinidad and Tobago",
	"US": "United States", "VC": "Saint Vincent and the Grenadines",
	"VG": "British Virgin Islands", "VI": "US Virgin Islands",

	// South America
	"AR": "Argentina", "BO": "Bolivia", "BR": "Brazil", "CL": "Chile",
	"CO": "Colombia", "EC": "Ecuador", "FK": "Falkland Islands",
	"GF": "French Guiana", "GY": "Guyana", "PE": "Peru", "PY": "Paraguay",
	"SR": "Suriname", "UY": "Uruguay", "VE": "Venezuela",

	// Oceania
	"AS": "American Samoa", "AU": "Australia", "CK": "Cook Islands",
	"FJ": "Fiji", "FM": "Micronesia", "GU": "Guam", "KI": "Kiribati",
	"MH": "Marshall Islands", "NC": "New Caledonia", "NF": "Norfolk Island",
	"NR": "Nauru", "NU": "Niue", "NZ": "New Zealand", "PF": "French Polynesia",
	"PG": "Papua New Guinea", "PW": "Palau", "SB": "Solomon Islands",
	"TO": "Tonga", "TV": "Tuvalu", "VU": "Vanuatu", "WF": "Wallis and Futuna",
	"WS": "Samoa",
}

var countryContinents = map[string]string{}

func init() {
	groups := map[string][]string{
		ContinentEurope: {
			"AD", "AL", "AT", "BA", "BE", "BG", "BY", "CH", "CY", "CZ", "DE", "DK",
			"EE", "ES", "FI", "FO", "FR", "GB", "GI", "GR", "HR", "HU", "IE", "IS",
			"IT", "LI", "LT", "LU", "LV", "MC", "MD", "ME", "MK", "MT", "NL", "NO",
			"PL", "PT", "RO", "RS", "RU", "SE", "SI", "SK", "SM", "UA", "VA", "XK",
		},
		ContinentAsia: {
			"AE", "AF", "AM", "AZ", "BD", "BH", "BN", "BT", "CN", "GE", "HK", "ID",
			"IL", "IN", "IQ", "IR", "JO", "JP", "KG", "KH", "KP", "KR", "KW", "KZ",
			"LA", "LB", "LK", "MM", "MN", "MO", "MV", "MY", "NP", "OM", "PH", "PK",
			"PS", "QA", "SA", "SG", "SY", "TH", "TJ", "TL", "TM", "TR", "TW", "UZ",
			"VN", "YE",
		},
		ContinentAfrica: {
			"AO", "BF", "BI", "BJ", "BW", "CD", "CF", "CG", "CI", "CM", "CV", "DJ",
			"DZ", "EG", "EH", "ER", "ET", "GA", "GH", "GM", "GN", "GQ", "GW", "KE",
			"KM", "LR", "LS", "LY", "MA", "MG", "ML", "MR", "MU", "MW", "MZ", "NA",
			"NE", "NG", "RE", "RW", "SC", "SD", "SL", "SN", "SO", "SS", "ST", "SZ",
			"TD", "TG", "TN", "TZ", "UG", "YT", "ZA", "ZM", "ZW",
		},
		ContinentNorthAmerica: {
			"AG", "AI", "AW", "BB", "BM", "BS", "BZ", "CA", "CR", "CU", "CW", "DM",
			"DO", "GD", "GL", "GP", "GT", "HN", "HT", "JM", "KN", "KY", "LC", "MQ",
			"MS", "MX", "NI", "PA", "PM", "PR", "SV", "SX", "TC", "TT", "US", "VC",
			"VG", "VI",
		},
		ContinentSouthAmerica: {
			"AR", "BO", "BR", "CL", "CO", "EC", "FK", "GF", "GY", "PE", "PY", "SR",
			"UY", "VE",
		},
		ContinentOceania: {
			"AS", "AU", "CK", "FJ", "FM", "GU", "KI", "MH", "NC", "NF", "NR", "NU",
			"NZ", "PF", "PG", "PW", "SB", "TO", "TV", "VU", "WF", "WS",
		},
	}

	for continent, codes := range groups {
		for _, code := range codes {
			countryContinents[code] = continent
		}
	}
}

// CountryName resolves an ISO country code to its display name.
// Unknown codes come back as-is with ok=false.
func CountryName(code string) (string, bool) {
	name, ok := countryNames[code]
	if !ok {
		return code, false
	}
	return name, true
}

// Continent resolves an ISO country code to its continent bucket.
func Continent(code string) string {
	if continent, ok := countryContinents[code]; ok {
		return continent
	}
	return ContinentOther
}
