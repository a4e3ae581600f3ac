package team

// Identity is one canonical member of the league's enumerated team set.
type Identity string

const (
	ChennaiSuperKings         Identity = "Chennai Super Kings"
	MumbaiIndians             Identity = "Mumbai Indians"
	RoyalChallengersBengaluru Identity = "Royal Challengers Bengaluru"
	KolkataKnightRiders       Identity = "Kolkata Knight Riders"
	SunrisersHyderabad        Identity = "Sunrisers Hyderabad"
	DelhiCapitals             Identity = "Delhi Capitals"
	PunjabKings               Identity = "Punjab Kings"
	RajasthanRoyals           Identity = "Rajasthan Royals"
	GujaratTitans             Identity = "Gujarat Titans"
	LucknowSuperGiants        Identity = "Lucknow Super Giants"
)

func (i Identity) String() string {
	return string(i)
}

// CanonicalTeams returns the fixed league roster in a fresh slice.
func CanonicalTeams() []Identity {
	return []Identity{
		ChennaiSuperKings,
		MumbaiIndians,
		RoyalChallengersBengaluru,
		KolkataKnightRiders,
		SunrisersHyderabad,
		DelhiCapitals,
		PunjabKings,
		RajasthanRoyals,
		GujaratTitans,
		LucknowSuperGiants,
	}
}

// DefaultAliases maps known abbreviations, historical franchise names and
// partial names onto the canonical roster. Lookups are case-insensitive.
func DefaultAliases() map[string]Identity {
	return map[string]Identity{
		"CSK":  ChennaiSuperKings,
		"MI":   MumbaiIndians,
		"RCB":  RoyalChallengersBengaluru,
		"KKR":  KolkataKnightRiders,
		"SRH":  SunrisersHyderabad,
		"DC":   DelhiCapitals,
		"PBKS": PunjabKings,
		"RR":   RajasthanRoyals,
		"GT":   GujaratTitans,
		"LSG":  LucknowSuperGiants,
		"PK":   PunjabKings,

		"Chennai Super Kings":         ChennaiSuperKings,
		"Mumbai Indians":              MumbaiIndians,
		"Royal Challengers Bengaluru": RoyalChallengersBengaluru,
		"Kolkata Knight Riders":       KolkataKnightRiders,
		"Sunrisers Hyderabad":         SunrisersHyderabad,
		"Delhi Capitals":              DelhiCapitals,
		"Punjab Kings":                PunjabKings,
		"Rajasthan Royals":            RajasthanRoyals,
		"Gujarat Titans":              GujaratTitans,
		"Lucknow Super Giants":        LucknowSuperGiants,

		// historical franchise names
		"Royal Challengers Bangalore": RoyalChallengersBengaluru,
		"Kings XI Punjab":             PunjabKings,
		"Delhi Daredevils":            DelhiCapitals,
		"Deccan Chargers":             SunrisersHyderabad,

		// city names and scoreboard shorthand
		"Gujarat":             GujaratTitans,
		"Lucknow":             LucknowSuperGiants,
		"Punjab":              PunjabKings,
		"Rajasthan":           RajasthanRoyals,
		"Hyderabad":           SunrisersHyderabad,
		"Delhi":               DelhiCapitals,
		"Kolkata":             KolkataKnightRiders,
		"Mumbai":              MumbaiIndians,
		"Chennai":             ChennaiSuperKings,
		"Titans":              GujaratTitans,
		"Super Giants":        LucknowSuperGiants,
		"Royals":              RajasthanRoyals,
		"Knights":             KolkataKnightRiders,
		"Capitals":            DelhiCapitals,
		"Kings":               PunjabKings,
		"Sunrisers":           SunrisersHyderabad,
		"Guj Titans":          GujaratTitans,
		"Lucknow SG":          LucknowSuperGiants,
		"Punjab K":            PunjabKings,
		"Raj Royals":          RajasthanRoyals,
		"Sunrisers Hyd":       SunrisersHyderabad,
		"Delhi C":             DelhiCapitals,
		"Kolkata KR":          KolkataKnightRiders,
		"Mumbai I":            MumbaiIndians,
		"Chennai SK":          ChennaiSuperKings,
		"TATA Gujarat Titans": GujaratTitans,
		"LSG Lucknow":         LucknowSuperGiants,
		"RR Royals":           RajasthanRoyals,
	}
}
