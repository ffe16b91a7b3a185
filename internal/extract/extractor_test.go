package extract

import (
	"strings"
	"testing"

	"github.com/joseph-ayodele/contracts-ledger/internal/equipment"
)

var testRoster = []string{"Bryan Gonzalez", "Rocny Rodriguez", "Carlo Dalelio"}

func newTestExtractor() *Extractor {
	return New(equipment.Default(), testRoster, []string{"3053636966"}, nil)
}

const englishContract = `Miami Water and Air 305-363-6966
Date: 03/15/2024
Lead/PO# F00123456
Suarez Xiomara
Customer Last Name Customer First Name
16100 SW 102 CT Miami FL 33157
305-290-9033 Home Phone# Work Phone# Cell Phone#
Water Conditioning System Qty 1 Model # EC5,QRs,ro,alk
Contract Price: $10,995
Payment Method: ISPC
Salesperson Name
Bryan Gonzalez
`

const spanishContract = `Miami Water and Air
Fecha: 04/02/2024
Cliente potencial/ Orden de compra
ORD556677
Soler Dennis
Apellido del Cliente Nombre del Cliente
Casa # Móvil # Trabajo #
786-555-0147
117 NE 24th Terr Homestead FL 33033
Sistema de acondicionamiento de agua Ctd 1 Modelo # TC QRS RO
Precio del Contrato: $ 8,500
Meta de Pago:Goodleap
Nombre del vendedor
Rocny Rodriguez
`

func TestDetectLanguage(t *testing.T) {
	if got := DetectLanguage(englishContract); got != English {
		t.Fatalf("english contract detected as %s", got)
	}
	if got := DetectLanguage(spanishContract); got != Spanish {
		t.Fatalf("spanish contract detected as %s", got)
	}
	// Ties fall back to English.
	if got := DetectLanguage("no markers at all"); got != English {
		t.Fatalf("markerless text detected as %s", got)
	}
}

func TestParse_EnglishContract(t *testing.T) {
	rec := newTestExtractor().Parse(englishContract)

	if rec.SalesRep != "Bryan Gonzalez" {
		t.Errorf("SalesRep = %q", rec.SalesRep)
	}
	if rec.CustomerName != "Xiomara Suarez" {
		t.Errorf("CustomerName = %q, want inverted last/first order", rec.CustomerName)
	}
	if rec.PhoneNumber != "3052909033" {
		t.Errorf("PhoneNumber = %q", rec.PhoneNumber)
	}
	if rec.CustomerAddress != "16100 SW 102 CT, Miami, FL 33157" {
		t.Errorf("CustomerAddress = %q", rec.CustomerAddress)
	}
	if rec.Equipment != "EC5 QRS RO ALK" {
		t.Errorf("Equipment = %q", rec.Equipment)
	}
	if rec.SoldPrice != "$10995" {
		t.Errorf("SoldPrice = %q", rec.SoldPrice)
	}
	if rec.Date != "03/15/2024" {
		t.Errorf("Date = %q", rec.Date)
	}
	if rec.LeadPO != "F00123456" {
		t.Errorf("LeadPO = %q", rec.LeadPO)
	}
	if rec.FinBy != "ISPC" {
		t.Errorf("FinBy = %q", rec.FinBy)
	}
}

func TestParse_SpanishContract(t *testing.T) {
	rec := newTestExtractor().Parse(spanishContract)

	if rec.SalesRep != "Rocny Rodriguez" {
		t.Errorf("SalesRep = %q", rec.SalesRep)
	}
	if rec.CustomerName != "Dennis Soler" {
		t.Errorf("CustomerName = %q", rec.CustomerName)
	}
	if rec.PhoneNumber != "7865550147" {
		t.Errorf("PhoneNumber = %q", rec.PhoneNumber)
	}
	if rec.CustomerAddress != "117 NE 24th Terr, Homestead, FL 33033" {
		t.Errorf("CustomerAddress = %q", rec.CustomerAddress)
	}
	if rec.Equipment != "TC QRS RO" {
		t.Errorf("Equipment = %q", rec.Equipment)
	}
	if rec.SoldPrice != "$8500" {
		t.Errorf("SoldPrice = %q", rec.SoldPrice)
	}
	if rec.Date != "04/02/2024" {
		t.Errorf("Date = %q", rec.Date)
	}
	if rec.LeadPO != "ORD556677" {
		t.Errorf("LeadPO = %q", rec.LeadPO)
	}
	if rec.FinBy != "Goodleap" {
		t.Errorf("FinBy = %q", rec.FinBy)
	}
}

func TestSalesRep_PlaceholderWindow(t *testing.T) {
	// No roster name present; the handwritten name sits under the bare
	// label and field labels must not be mistaken for it.
	text := strings.Join([]string{
		"Customer Last Name Customer First Name",
		"Salesperson Name",
		"Contract Price: $500",
		"Walter Pena",
	}, "\n")
	rec := newTestExtractor().Parse(text)
	if rec.SalesRep != "Walter Pena" {
		t.Fatalf("SalesRep = %q, want Walter Pena", rec.SalesRep)
	}
}

func TestPhone_CompanyNumberExcluded(t *testing.T) {
	text := "305-363-6966 Home Phone#\n"
	rec := newTestExtractor().Parse(text)
	if rec.PhoneNumber != "" {
		t.Fatalf("PhoneNumber = %q, want empty (deny-listed)", rec.PhoneNumber)
	}
}

func TestPhone_EmailFallback(t *testing.T) {
	text := "some header\n305-290-9033 customer@example.com\n"
	rec := newTestExtractor().Parse(text)
	if rec.PhoneNumber != "3052909033" {
		t.Fatalf("PhoneNumber = %q", rec.PhoneNumber)
	}
}

func TestParse_MissingFieldsStayEmpty(t *testing.T) {
	rec := newTestExtractor().Parse("nothing useful here\n")
	if !rec.IsEmpty() {
		t.Fatalf("expected all-empty record, got %+v", rec)
	}
}

func TestAddress_FormattedOutputReparses(t *testing.T) {
	formatted := "16100 SW 102 CT, Miami, FL 33157"
	m := addressGridPattern.FindStringSubmatch(formatted)
	if m == nil {
		t.Fatal("formatted address did not re-parse")
	}
	if got := formatAddress(m[1], m[2], m[3], m[4]); got != formatted {
		t.Fatalf("round-trip = %q, want %q", got, formatted)
	}
}

func TestEquipment_SectionScanFallback(t *testing.T) {
	// No Model # list; free keywords near the section anchor are picked up
	// through the variant table.
	text := strings.Join([]string{
		"Water Conditioning agreement",
		"includes Reverse Osmosis under sink",
		"plus Alkaline add-on and Security Cage",
	}, "\n")
	rec := newTestExtractor().Parse(text)
	// Vocabulary table order: ALK before RO before CAGE.
	if rec.Equipment != "ALK RO CAGE" {
		t.Fatalf("Equipment = %q, want ALK RO CAGE", rec.Equipment)
	}
}
