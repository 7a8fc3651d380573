package vin

// registry maps WMI codes to manufacturers. Several WMIs resolve to one
// manufacturer (plants, regions, vehicle classes).
var registry = []Make{
	{Name: "Volkswagen", WMIs: []string{"WVW", "WVG", "WV1", "WV2", "1VW", "3VW", "9BW"}},
	{Name: "Audi", Tendency: TendencyAWD, WMIs: []string{"WAU", "WA1", "WUA", "TRU"}},
	{Name: "BMW", Tendency: TendencyRear, WMIs: []string{"WBA", "WBS", "WBX", "WBY", "4US", "5UX"}},
	{Name: "Mercedes-Benz", Tendency: TendencyRear, WMIs: []string{"WDB", "WDD", "WDC", "WMX", "W1K", "W1N", "4JG"}},
	{Name: "Porsche", Tendency: TendencyRear, WMIs: []string{"WP0", "WP1"}},
	{Name: "Opel", WMIs: []string{"W0L", "W0V"}},
	{Name: "Ford", WMIs: []string{"WF0", "1FA", "1FM", "1FT", "3FA"}},
	{Name: "Skoda", WMIs: []string{"TMB"}},
	{Name: "SEAT", WMIs: []string{"VSS"}},
	{Name: "Renault", WMIs: []string{"VF1", "VF6"}},
	{Name: "Dacia", WMIs: []string{"UU1"}},
	{Name: "Peugeot", WMIs: []string{"VF3", "VR3"}},
	{Name: "Citroen", WMIs: []string{"VF7", "VR7"}},
	{Name: "Fiat", WMIs: []string{"ZFA", "ZFC"}},
	{Name: "Alfa Romeo", WMIs: []string{"ZAR"}},
	{Name: "Volvo", WMIs: []string{"YV1", "YV4", "LYV"}},
	{Name: "Saab", WMIs: []string{"YS3"}},
	{Name: "Toyota", WMIs: []string{"JTD", "JTE", "JTN", "JT2", "SB1", "NMT", "2T1", "4T1"}},
	{Name: "Lexus", Tendency: TendencyRear, WMIs: []string{"JTH", "JTJ", "2T2"}},
	{Name: "Honda", WMIs: []string{"JHM", "SHH", "1HG", "2HG"}},
	{Name: "Mazda", WMIs: []string{"JM1", "JMZ"}},
	{Name: "Nissan", WMIs: []string{"JN1", "SJN", "1N4"}},
	{Name: "Subaru", Tendency: TendencyAWD, WMIs: []string{"JF1", "JF2", "4S3"}},
	{Name: "Mitsubishi", WMIs: []string{"JA3", "JMB"}},
	{Name: "Hyundai", WMIs: []string{"KMH", "KM8", "TMA", "5NP"}},
	{Name: "Kia", WMIs: []string{"KNA", "KND", "U5Y"}},
	{Name: "Jeep", Tendency: TendencyAWD, WMIs: []string{"1J4", "1C4", "ZAC"}},
	{Name: "Land Rover", Tendency: TendencyAWD, WMIs: []string{"SAL"}},
	{Name: "Jaguar", Tendency: TendencyRear, WMIs: []string{"SAJ"}},
	{Name: "Tesla", WMIs: []string{"5YJ", "7SA", "LRW", "XP7"}},
	{Name: "Polestar", WMIs: []string{"LPS", "YSM"}},
	{Name: "BYD", WMIs: []string{"LGX"}},
}

// modelCatalog lists models per manufacturer. Model selection indexes into
// these slices, so reordering entries changes decode output.
// Saab is registered without models and decodes as unknown.
var modelCatalog = map[string][]string{
	"Volkswagen":    {"Golf", "Passat", "Polo", "Tiguan", "Touran", "Arteon", "T-Roc", "ID.3", "ID.4", "Sharan", "Up!", "Jetta"},
	"Audi":          {"A3", "A4", "A6", "A8", "Q3", "Q5", "Q7", "Q8", "TT", "e-tron"},
	"BMW":           {"1 Series", "3 Series", "5 Series", "7 Series", "X1", "X3", "X5", "X6", "i3", "i4"},
	"Mercedes-Benz": {"A-Class", "C-Class", "E-Class", "S-Class", "GLA", "GLC", "GLE", "CLA", "EQC", "EQE"},
	"Porsche":       {"911", "Cayenne", "Macan", "Panamera", "Taycan"},
	"Opel":          {"Astra", "Corsa", "Insignia", "Mokka", "Zafira", "Grandland"},
	"Ford":          {"Focus", "Fiesta", "Mondeo", "Kuga", "Puma", "Mustang", "S-Max", "Transit"},
	"Skoda":         {"Octavia", "Fabia", "Superb", "Kodiaq", "Karoq", "Kamiq", "Scala", "Enyaq"},
	"SEAT":          {"Leon", "Ibiza", "Ateca", "Arona", "Tarraco"},
	"Renault":       {"Clio", "Megane", "Captur", "Kadjar", "Scenic", "Zoe", "Talisman"},
	"Dacia":         {"Duster", "Sandero", "Logan", "Jogger", "Spring"},
	"Peugeot":       {"208", "308", "508", "2008", "3008", "5008"},
	"Citroen":       {"C3", "C4", "C5 Aircross", "Berlingo", "C3 Aircross"},
	"Fiat":          {"500", "Panda", "Tipo", "500X", "Ducato"},
	"Alfa Romeo":    {"Giulia", "Stelvio", "Giulietta", "Tonale"},
	"Volvo":         {"XC40", "XC60", "XC90", "S60", "S90", "V60", "V90"},
	"Toyota":        {"Corolla", "Yaris", "RAV4", "C-HR", "Camry", "Auris", "Avensis", "Prius", "Land Cruiser"},
	"Lexus":         {"IS", "ES", "NX", "RX", "UX", "LS"},
	"Honda":         {"Civic", "Accord", "CR-V", "HR-V", "Jazz"},
	"Mazda":         {"Mazda3", "Mazda6", "CX-3", "CX-5", "CX-30", "MX-5"},
	"Nissan":        {"Qashqai", "Juke", "X-Trail", "Micra", "Leaf", "Navara"},
	"Subaru":        {"Impreza", "Forester", "Outback", "XV", "Legacy", "BRZ"},
	"Mitsubishi":    {"Outlander", "ASX", "Eclipse Cross", "Space Star", "L200"},
	"Hyundai":       {"i20", "i30", "Tucson", "Kona", "Santa Fe", "Ioniq 5"},
	"Kia":           {"Ceed", "Sportage", "Rio", "Niro", "Sorento", "Stonic", "EV6"},
	"Jeep":          {"Wrangler", "Grand Cherokee", "Cherokee", "Compass", "Renegade"},
	"Land Rover":    {"Range Rover", "Range Rover Sport", "Discovery", "Defender", "Evoque"},
	"Jaguar":        {"XE", "XF", "F-Pace", "E-Pace", "I-Pace"},
	"Tesla":         {"Model 3", "Model Y", "Model S", "Model X"},
	"Polestar":      {"Polestar 2", "Polestar 3"},
	"BYD":           {"Atto 3", "Seal", "Dolphin", "Han", "Tang"},
}
