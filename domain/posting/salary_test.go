package posting

import (
	"math"
	"testing"
)

func TestNormalizeSalary_Periods(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want float64
	}{
		{"hourly", "$20 por hora", 3200},
		{"hourly english", "20/hr", 3200},
		{"daily", "$50 por día", 1100},
		{"weekly", "$200 semanal", 800},
		{"yearly", "60000 anual", 5000},
		{"monthly default", "1500 mensual", 1500},
		{"bare number", "1500", 1500},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := NormalizeSalary(tt.raw)
			if !ok {
				t.Fatalf("NormalizeSalary(%q): expected a value, got none", tt.raw)
			}
			if math.Abs(got-tt.want) > 1e-9 {
				t.Errorf("NormalizeSalary(%q) = %v, want %v", tt.raw, got, tt.want)
			}
		})
	}
}

func TestNormalizeSalary_RangeTakesMean(t *testing.T) {
	got, ok := NormalizeSalary("$1000 - $2000")
	if !ok {
		t.Fatal("expected a value for a range")
	}
	if got != 1500 {
		t.Errorf("range mean = %v, want 1500", got)
	}

	got, ok = NormalizeSalary("entre 20 y 30 por hora")
	if !ok {
		t.Fatal("expected a value for an hourly range")
	}
	if got != 4000 {
		t.Errorf("hourly range mean = %v, want 4000", got)
	}
}

func TestNormalizeSalary_MeanNeedsRangeSeparator(t *testing.T) {
	// Two numbers without a range separator between them are not a range;
	// the first number wins.
	got, ok := NormalizeSalary("$800 por 8 horas diarias")
	if !ok {
		t.Fatal("expected a value")
	}
	if got != 800*160 {
		t.Errorf("non-range pair = %v, want %v", got, 800*160)
	}

	got, ok = NormalizeSalary("$3000 al mes en equipo de 5 personas")
	if !ok {
		t.Fatal("expected a value")
	}
	if got != 3000 {
		t.Errorf("non-range pair = %v, want 3000", got)
	}
}

func TestPeriodFactor_WholeWordsOnly(t *testing.T) {
	tests := []struct {
		raw  string
		want float64
	}{
		{"1500 through direct deposit", 1500},
		{"1500 paid midyearly", 1500},
		{"1500 holiday bonus included", 1500},
		{"de 1000 a 2000", 1500},
	}

	for _, tt := range tests {
		got, ok := NormalizeSalary(tt.raw)
		if !ok {
			t.Fatalf("NormalizeSalary(%q): expected a value, got none", tt.raw)
		}
		if math.Abs(got-tt.want) > 1e-9 {
			t.Errorf("NormalizeSalary(%q) = %v, want %v", tt.raw, got, tt.want)
		}
	}
}

func TestNormalizeSalary_Unspecified(t *testing.T) {
	for _, raw := range []string{
		"",
		"No especificado",
		"A convenir",
		"Salario competitivo",
		"negociable",
		"n/a",
		"excelente ambiente laboral",
	} {
		if v, ok := NormalizeSalary(raw); ok {
			t.Errorf("NormalizeSalary(%q) = %v, want no value", raw, v)
		}
	}
}

func TestNormalizeSalary_PlausibilityBand(t *testing.T) {
	if v, ok := NormalizeSalary("50"); ok {
		t.Errorf("below-band value accepted: %v", v)
	}
	if v, ok := NormalizeSalary("2000000000"); ok {
		t.Errorf("above-band value accepted: %v", v)
	}
}

func TestNormalizeSalary_LocaleSeparators(t *testing.T) {
	tests := []struct {
		raw  string
		want float64
	}{
		{"1.500", 1500},
		{"1,500", 1500},
		{"1.500,50", 1500.50},
		{"2,500.75", 2500.75},
		{"1.234.567", 1234567},
	}

	for _, tt := range tests {
		got, ok := NormalizeSalary(tt.raw)
		if !ok {
			t.Fatalf("NormalizeSalary(%q): expected a value, got none", tt.raw)
		}
		if math.Abs(got-tt.want) > 1e-9 {
			t.Errorf("NormalizeSalary(%q) = %v, want %v", tt.raw, got, tt.want)
		}
	}
}
