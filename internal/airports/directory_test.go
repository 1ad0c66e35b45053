package airports

import "testing"

func TestBuildGroupsByContinentAndCountry(t *testing.T) {
	raw := []Raw{
		{Code: "OTP", Name: "Henri Coanda International", City: "Bucharest", CountryCode: "RO"},
		{Code: "BBU", Name: "Aurel Vlaicu", City: "Bucharest", CountryCode: "RO"},
		{Code: "FCO", Name: "Fiumicino", City: "Rome", CountryCode: "IT"},
		{Code: "NRT", Name: "Narita International", City: "Tokyo", CountryCode: "JP"},
		{Code: "XYZ", Name: "Somewhere", City: "Nowhere", CountryCode: "ZZ"}, // unknown country
		{Code: "BAD1", Name: "Not an airport", CountryCode: "RO"},           // invalid code
	}

	dir := Build(raw)

	if got := dir.Count(); got != 5 {
		t.Fatalf("Count() = %d, want 5", got)
	}

	romania := dir[ContinentEurope]["Romania"]
	if len(romania) != 2 {
		t.Fatalf("Romania has %d airports, want 2", len(romania))
	}
	// Sorted by name: Aurel Vlaicu before Henri Coanda
	if romania[0].Code != "BBU" || romania[1].Code != "OTP" {
		t.Errorf("Romania airports = [%s %s], want [BBU OTP]", romania[0].Code, romania[1].Code)
	}

	if len(dir[ContinentAsia]["Japan"]) != 1 {
		t.Errorf("Japan has %d airports, want 1", len(dir[ContinentAsia]["Japan"]))
	}

	if len(dir[ContinentOther]) == 0 {
		t.Error("unknown country code did not land in the Other bucket")
	}
}

func TestBuildLowercasesAndTrims(t *testing.T) {
	dir := Build([]Raw{{Code: " otp ", Name: "Henri Coanda", CountryCode: "ro"}})

	romania := dir[ContinentEurope]["Romania"]
	if len(romania) != 1 || romania[0].Code != "OTP" {
		t.Fatalf("Build() did not normalize code/country, got %+v", dir)
	}
}

func TestContinentFallback(t *testing.T) {
	if got := Continent("RO"); got != ContinentEurope {
		t.Errorf("Continent(RO) = %q, want %q", got, ContinentEurope)
	}
	if got := Continent("ZZ"); got != ContinentOther {
		t.Errorf("Continent(ZZ) = %q, want %q", got, ContinentOther)
	}
}

func TestCountryName(t *testing.T) {
	name, ok := CountryName("IT")
	if !ok || name != "Italy" {
		t.Errorf("CountryName(IT) = %q, %v, want Italy, true", name, ok)
	}
	if _, ok := CountryName("ZZ"); ok {
		t.Error("CountryName(ZZ) ok = true, want false")
	}
}
