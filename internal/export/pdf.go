// Package export renders a practice-session report as a paginated PDF.
package export

import (
	"fmt"
	"io"

	"github.com/go-pdf/fpdf"

	"github.com/prepmate/interview-coach/internal/interview"
)

// Report is the full session snapshot consumed by the renderer: the generated
// questions plus whatever answers and evaluations exist, keyed by question id.
type Report struct {
	JobTitle    string                          `json:"jobTitle"`
	Questions   []interview.Question            `json:"questions"`
	Answers     map[string]string               `json:"answers"`
	Evaluations map[string]interview.Evaluation `json:"evaluations"`
}

const (
	pageMargin = 15.0
	lineHeight = 5.5
)

// Render writes the report PDF to w. Questions keep their batch order; a
// question without an answer or evaluation simply omits those sections.
func Render(w io.Writer, report Report) error {
	doc := fpdf.New("P", "mm", "A4", "")
	doc.SetMargins(pageMargin, pageMargin, pageMargin)
	doc.SetAutoPageBreak(true, pageMargin)
	tr := doc.UnicodeTranslatorFromDescriptor("")

	doc.SetFooterFunc(func() {
		doc.SetY(-12)
		doc.SetFont("Helvetica", "I", 8)
		doc.SetTextColor(128, 128, 128)
		doc.CellFormat(0, 6, fmt.Sprintf("Page %d", doc.PageNo()), "", 0, "C", false, 0, "")
	})

	doc.AddPage()

	doc.SetFont("Helvetica", "B", 18)
	doc.SetTextColor(0, 0, 0)
	title := "Interview Practice Report"
	if report.JobTitle != "" {
		title = fmt.Sprintf("Interview Practice Report - %s", report.JobTitle)
	}
	doc.MultiCell(0, 8, tr(title), "", "L", false)
	doc.Ln(4)

	for i, q := range report.Questions {
		writeQuestion(doc, tr, i+1, q, report.Answers[q.ID], report.Evaluations[q.ID], hasEvaluation(report.Evaluations, q.ID))
	}

	return doc.Output(w)
}

func hasEvaluation(evaluations map[string]interview.Evaluation, id string) bool {
	_, ok := evaluations[id]
	return ok
}

func writeQuestion(doc *fpdf.Fpdf, tr func(string) string, number int, q interview.Question, answer string, evaluation interview.Evaluation, evaluated bool) {
	doc.SetFont("Helvetica", "B", 12)
	doc.MultiCell(0, lineHeight+1, tr(fmt.Sprintf("Q%d. %s", number, q.Question)), "", "L", false)

	doc.SetFont("Helvetica", "I", 9)
	doc.SetTextColor(90, 90, 90)
	doc.MultiCell(0, lineHeight, tr(fmt.Sprintf("%s / %s", q.Category, q.Difficulty)), "", "L", false)
	doc.SetTextColor(0, 0, 0)
	doc.Ln(1)

	if answer != "" {
		writeSection(doc, tr, "Your Answer", answer)
	}

	writeSection(doc, tr, "Model Answer", q.ModelAnswer)

	if evaluated {
		writeSection(doc, tr, fmt.Sprintf("Evaluation - Score %d/100", evaluation.Score), evaluation.DetailedFeedback)
		writeList(doc, tr, "Strengths", evaluation.Strengths)
		writeList(doc, tr, "Areas for Improvement", evaluation.AreasForImprovement)
		writeList(doc, tr, "Suggestions", evaluation.Suggestions)
	}

	doc.Ln(6)
}

func writeSection(doc *fpdf.Fpdf, tr func(string) string, heading, body string) {
	doc.SetFont("Helvetica", "B", 10)
	doc.MultiCell(0, lineHeight, tr(heading), "", "L", false)
	doc.SetFont("Helvetica", "", 10)
	doc.MultiCell(0, lineHeight, tr(body), "", "L", false)
	doc.Ln(2)
}

func writeList(doc *fpdf.Fpdf, tr func(string) string, heading string, items []string) {
	if len(items) == 0 {
		return
	}
	doc.SetFont("Helvetica", "B", 10)
	doc.MultiCell(0, lineHeight, tr(heading), "", "L", false)
	doc.SetFont("Helvetica", "", 10)
	for _, item := range items {
		doc.MultiCell(0, lineHeight, tr("- "+item), "", "L", false)
	}
	doc.Ln(2)
}
