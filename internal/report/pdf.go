package report

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/jung-kurt/gofpdf"
)

// Brand color used for headings.
var headingR, headingG, headingB = 51, 103, 214

// Filename derives the download name from the predicted disease.
func Filename(analysis Analysis) string {
	disease := strings.TrimSpace(analysis.PredictedDisease)
	if disease == "" {
		disease = "report"
	}
	return fmt.Sprintf("symptom_report_%s.pdf", strings.ReplaceAll(disease, " ", "_"))
}

// BuildPDF renders the analysis as an A4 document.
func BuildPDF(analysis Analysis, data PatientData) ([]byte, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetTitle("Symptom Analysis Report", true)
	pdf.SetAuthor("Aarogya Health", true)
	pdf.SetMargins(17, 20, 17)
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 20)
	pdf.SetTextColor(headingR, headingG, headingB)
	pdf.CellFormat(0, 12, "Symptom Analysis Report", "", 1, "C", false, 0, "")
	pdf.Ln(4)

	sectionHeader(pdf, "Patient Overview")
	overview := [][2]string{
		{"Name", orUnspecified(data.Name)},
		{"Age", ageOrUnspecified(data.Age)},
		{"Contact", orUnspecified(data.Contact)},
		{"Gender", orUnspecified(analysis.Gender)},
		{"Predicted Disease", orUnspecified(analysis.PredictedDisease)},
	}
	pdf.SetFont("Helvetica", "", 11)
	for _, row := range overview {
		pdf.SetTextColor(51, 51, 51)
		pdf.SetFont("Helvetica", "B", 11)
		pdf.CellFormat(45, 7, row[0], "1", 0, "L", false, 0, "")
		pdf.SetFont("Helvetica", "", 11)
		pdf.CellFormat(0, 7, row[1], "1", 1, "L", false, 0, "")
	}
	pdf.Ln(4)

	sectionHeader(pdf, "Clinical Description")
	body(pdf, fmt.Sprintf("Disease: %s", orUnspecified(analysis.PredictedDisease)))
	about := analysis.Description
	if strings.TrimSpace(about) == "" {
		about = "No detailed information available for this condition."
	}
	body(pdf, fmt.Sprintf("About: %s", about))
	if data.Symptoms != "" {
		link := fmt.Sprintf("Symptoms: The reported symptoms (%s)", data.Symptoms)
		if data.Severity != "" {
			link += fmt.Sprintf(" with severity %s", data.Severity)
		}
		link += fmt.Sprintf(" are commonly associated with %s.", orUnspecified(analysis.PredictedDisease))
		body(pdf, link)
	}
	pdf.Ln(4)

	if len(analysis.RecommendedMedicines) > 0 {
		sectionHeader(pdf, "Recommended Medicines")
		for _, med := range analysis.RecommendedMedicines {
			bullet(pdf, strings.TrimSpace(fmt.Sprintf("%s %s %s", med.Name, med.Dosage, med.Notes)))
		}
		pdf.Ln(4)
	}

	if len(analysis.SuggestedDiet) > 0 {
		sectionHeader(pdf, "Suggested Diet")
		for _, item := range analysis.SuggestedDiet {
			bullet(pdf, item)
		}
		pdf.Ln(4)
	}

	if len(analysis.WorkoutExercise) > 0 {
		sectionHeader(pdf, "Workout / Exercise")
		for _, item := range analysis.WorkoutExercise {
			bullet(pdf, item)
		}
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("report: failed to render pdf: %w", err)
	}
	return buf.Bytes(), nil
}

func sectionHeader(pdf *gofpdf.Fpdf, title string) {
	pdf.SetFont("Helvetica", "B", 14)
	pdf.SetTextColor(headingR, headingG, headingB)
	pdf.CellFormat(0, 9, title, "", 1, "L", false, 0, "")
	pdf.Ln(1)
}

func body(pdf *gofpdf.Fpdf, text string) {
	pdf.SetFont("Helvetica", "", 11)
	pdf.SetTextColor(51, 51, 51)
	pdf.MultiCell(0, 6, text, "", "L", false)
}

func bullet(pdf *gofpdf.Fpdf, text string) {
	pdf.SetFont("Helvetica", "", 11)
	pdf.SetTextColor(51, 51, 51)
	pdf.MultiCell(0, 6, "- "+text, "", "L", false)
}

func ageOrUnspecified(age int) string {
	if age <= 0 {
		return "Not provided"
	}
	return fmt.Sprintf("%d", age)
}
