package vin

// engineProfiles maps manufacturer -> VDS engine code (VIN[3:5]) -> profile.
// Pairs missing here resolve to DefaultEngine().
var engineProfiles = map[string]map[string]EngineProfile{
	"Volkswagen": {
		"ZZ": {Version: "1.9 TDI", Fuel: FuelDiesel, DisplacementCC: 1896, PowerHP: 105},
		"CB": {Version: "2.0 TDI", Fuel: FuelDiesel, DisplacementCC: 1968, PowerHP: 150},
		"AU": {Version: "1.4 TSI", Fuel: FuelGasoline, DisplacementCC: 1395, PowerHP: 125},
		"3C": {Version: "2.0 TSI", Fuel: FuelGasoline, DisplacementCC: 1984, PowerHP: 190},
		"E1": {Version: "Pro Performance", Fuel: FuelElectric, DisplacementCC: 0, PowerHP: 204},
	},
	"Audi": {
		"ZZ": {Version: "2.0 TDI", Fuel: FuelDiesel, DisplacementCC: 1968, PowerHP: 143},
		"GB": {Version: "35 TFSI", Fuel: FuelGasoline, DisplacementCC: 1498, PowerHP: 150},
		"FY": {Version: "45 TDI quattro", Fuel: FuelDiesel, DisplacementCC: 2967, PowerHP: 231},
		"GE": {Version: "e-tron 55 quattro", Fuel: FuelElectric, DisplacementCC: 0, PowerHP: 408},
	},
	"BMW": {
		"5A": {Version: "320d", Fuel: FuelDiesel, DisplacementCC: 1995, PowerHP: 190},
		"8C": {Version: "330i", Fuel: FuelGasoline, DisplacementCC: 1998, PowerHP: 258},
		"7E": {Version: "i4 eDrive40", Fuel: FuelElectric, DisplacementCC: 0, PowerHP: 340},
		"CF": {Version: "M3 Competition", Fuel: FuelGasoline, DisplacementCC: 2993, PowerHP: 510},
	},
	"Mercedes-Benz": {
		"20": {Version: "C 200", Fuel: FuelGasoline, DisplacementCC: 1496, PowerHP: 204},
		"22": {Version: "C 220 d", Fuel: FuelDiesel, DisplacementCC: 1950, PowerHP: 200},
		"EQ": {Version: "EQE 350+", Fuel: FuelElectric, DisplacementCC: 0, PowerHP: 292},
	},
	"Skoda": {
		"ZZ": {Version: "1.6 TDI", Fuel: FuelDiesel, DisplacementCC: 1598, PowerHP: 115},
		"AJ": {Version: "1.5 TSI", Fuel: FuelGasoline, DisplacementCC: 1498, PowerHP: 150},
	},
	"Ford": {
		"XX": {Version: "1.0 EcoBoost", Fuel: FuelGasoline, DisplacementCC: 999, PowerHP: 125},
		"P7": {Version: "2.0 TDCi", Fuel: FuelDiesel, DisplacementCC: 1997, PowerHP: 150},
	},
	"Renault": {
		"RJ": {Version: "1.5 dCi", Fuel: FuelDiesel, DisplacementCC: 1461, PowerHP: 110},
		"BF": {Version: "1.3 TCe", Fuel: FuelGasoline, DisplacementCC: 1332, PowerHP: 140},
	},
	"Dacia": {
		"SD": {Version: "1.0 TCe LPG", Fuel: FuelLPG, DisplacementCC: 999, PowerHP: 100},
	},
	"Peugeot": {
		"UH": {Version: "1.2 PureTech", Fuel: FuelGasoline, DisplacementCC: 1199, PowerHP: 130},
	},
	"Fiat": {
		"31": {Version: "1.2 8V", Fuel: FuelGasoline, DisplacementCC: 1242, PowerHP: 69},
		"FF": {Version: "1.3 MultiJet", Fuel: FuelDiesel, DisplacementCC: 1248, PowerHP: 95},
	},
	"Volvo": {
		"XZ": {Version: "T8 Recharge", Fuel: FuelPluginHybrid, DisplacementCC: 1969, PowerHP: 455},
		"DZ": {Version: "D4", Fuel: FuelDiesel, DisplacementCC: 1969, PowerHP: 190},
	},
	"Toyota": {
		"BR": {Version: "1.8 Hybrid", Fuel: FuelHybrid, DisplacementCC: 1798, PowerHP: 122},
		"MA": {Version: "2.5 Hybrid", Fuel: FuelHybrid, DisplacementCC: 2487, PowerHP: 218},
		"ZR": {Version: "1.6 Valvematic", Fuel: FuelGasoline, DisplacementCC: 1598, PowerHP: 132},
	},
	"Subaru": {
		"SK": {Version: "2.0 Boxer", Fuel: FuelGasoline, DisplacementCC: 1995, PowerHP: 150},
	},
	"Hyundai": {
		"PE": {Version: "1.6 T-GDI", Fuel: FuelGasoline, DisplacementCC: 1598, PowerHP: 180},
		"D8": {Version: "1.6 CRDi", Fuel: FuelDiesel, DisplacementCC: 1598, PowerHP: 136},
	},
	"Tesla": {
		"3E": {Version: "Long Range AWD", Fuel: FuelElectric, DisplacementCC: 0, PowerHP: 498},
		"YE": {Version: "Performance", Fuel: FuelElectric, DisplacementCC: 0, PowerHP: 534},
		"SA": {Version: "Standard Range", Fuel: FuelElectric, DisplacementCC: 0, PowerHP: 283},
	},
}
