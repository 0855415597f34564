package token

import "testing"

func baseParams() Params {
	return Params{
		LocationID:    "loc-1",
		ProgramID:     "prog-1",
		SessionTypeID: "st-1",
		TrainerID:     "staff-1",
		StartHour:     9,
		EndHour:       17,
		DateRange:     "short",
		SliceID:       "item1-0",
		Context:       "search",
	}
}

func TestGenerate_Deterministic(t *testing.T) {
	signer := NewSigner("salt")

	first := signer.Generate(baseParams())
	second := signer.Generate(baseParams())

	if first != second {
		t.Errorf("identical params produced different tokens: %s vs %s", first, second)
	}
	if len(first) != 64 {
		t.Errorf("expected 64 hex chars, got %d", len(first))
	}
}

func TestGenerate_SaltChangesToken(t *testing.T) {
	a := NewSigner("salt-a").Generate(baseParams())
	b := NewSigner("salt-b").Generate(baseParams())

	if a == b {
		t.Error("different salts produced the same token")
	}
}

func TestValidate_RoundTrip(t *testing.T) {
	signer := NewSigner("salt")
	tok := signer.Generate(baseParams())

	if !signer.Validate(baseParams(), tok) {
		t.Error("freshly generated token failed validation")
	}
}

func TestValidate_AnyFieldMutationInvalidates(t *testing.T) {
	signer := NewSigner("salt")
	tok := signer.Generate(baseParams())

	mutations := []struct {
		name   string
		mutate func(*Params)
	}{
		{"location", func(p *Params) { p.LocationID = "loc-2" }},
		{"program", func(p *Params) { p.ProgramID = "prog-2" }},
		{"session type", func(p *Params) { p.SessionTypeID = "st-2" }},
		{"trainer", func(p *Params) { p.TrainerID = "staff-2" }},
		{"start hour", func(p *Params) { p.StartHour = 10 }},
		{"end hour", func(p *Params) { p.EndHour = 18 }},
		{"date range", func(p *Params) { p.DateRange = "long" }},
		{"slice id", func(p *Params) { p.SliceID = "item1-1" }},
		{"context", func(p *Params) { p.Context = "other" }},
	}

	for _, tt := range mutations {
		t.Run(tt.name, func(t *testing.T) {
			params := baseParams()
			tt.mutate(&params)
			if signer.Validate(params, tok) {
				t.Errorf("token still valid after mutating %s", tt.name)
			}
		})
	}
}

func TestValidate_RejectsGarbage(t *testing.T) {
	signer := NewSigner("salt")

	tests := []struct {
		name  string
		token string
	}{
		{"empty", ""},
		{"not hex", "zzzz"},
		{"truncated", signer.Generate(baseParams())[:32]},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if signer.Validate(baseParams(), tt.token) {
				t.Errorf("token %q should not validate", tt.token)
			}
		})
	}
}

func TestCanonical_FieldBoundaries(t *testing.T) {
	signer := NewSigner("salt")

	// Shifting characters across field boundaries must not collide.
	a := baseParams()
	a.LocationID = "ab"
	a.ProgramID = "c"

	b := baseParams()
	b.LocationID = "a"
	b.ProgramID = "bc"

	if signer.Generate(a) == signer.Generate(b) {
		t.Error("field boundary shift produced colliding tokens")
	}
}
