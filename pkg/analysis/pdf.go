package analysis

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/jung-kurt/gofpdf"

	"github.com/jwebster45206/sentry-coach/pkg/lang"
	"github.com/jwebster45206/sentry-coach/pkg/state"
)

// ErrUnicodeFontRequired is returned when a report contains text the core
// PDF fonts cannot encode and no UTF-8 font was supplied.
var ErrUnicodeFontRequired = errors.New("a UTF-8 font file is required to render this report")

const unicodeFamily = "report"

// PDFOptions controls report rendering.
type PDFOptions struct {
	// FontPath is a UTF-8 TrueType font. Required for Chinese reports.
	FontPath string
}

// WritePDF renders r as an A4 document to w.
func WritePDF(w io.Writer, r Report, opts PDFOptions) error {
	needUnicode := r.Language.IsChinese() || reportHasHan(r)
	if needUnicode && opts.FontPath == "" {
		return ErrUnicodeFontRequired
	}

	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(18, 18, 18)
	pdf.SetAutoPageBreak(true, 18)

	family := "Helvetica"
	tr := func(s string) string { return s }
	if opts.FontPath != "" {
		if _, err := os.Stat(opts.FontPath); err != nil {
			return fmt.Errorf("failed to open font: %w", err)
		}
		pdf.AddUTF8Font(unicodeFamily, "", opts.FontPath)
		family = unicodeFamily
	} else {
		tr = pdf.UnicodeTranslatorFromDescriptor("")
	}
	bold := "B"
	if family == unicodeFamily {
		// only the regular face is registered
		bold = ""
	}

	labels := LabelsFor(r.Language)
	pdf.SetTitle(labels.Title, true)
	pdf.AddPage()

	pdf.SetFont(family, bold, 18)
	pdf.MultiCell(0, 9, tr(labels.Title), "", "L", false)
	pdf.Ln(4)

	pdf.SetFont(family, bold, 13)
	pdf.MultiCell(0, 7, tr(labels.OverallOutcome+": "+outcomeLabel(r, labels)), "", "L", false)
	pdf.SetFont(family, "", 11)
	pdf.MultiCell(0, 6, tr(r.Summary), "", "L", false)
	pdf.Ln(4)

	if len(r.Interventions) > 0 {
		pdf.SetFont(family, bold, 13)
		pdf.MultiCell(0, 7, tr(labels.InterventionTitle), "", "L", false)
		pdf.Ln(2)
	}

	for _, iv := range r.Interventions {
		pdf.SetFont(family, bold, 11)
		setEvaluationColor(pdf, iv.Evaluation)
		header := fmt.Sprintf(labels.RoundFormat, iv.Round) + " - " + labels.Evaluations[iv.Evaluation]
		pdf.MultiCell(0, 6, tr(header), "", "L", false)
		pdf.SetTextColor(0, 0, 0)

		pdf.SetFont(family, "", 10)
		pdf.MultiCell(0, 5, tr(labels.AdultMessage+": \""+iv.AdultMessage+"\""), "", "L", false)
		pdf.MultiCell(0, 5, tr(labels.ChildReply+": \""+iv.ChildReply+"\""), "", "L", false)
		if iv.Thought != "" {
			pdf.MultiCell(0, 5, tr(labels.Thought+": "+iv.Thought), "", "L", false)
		}
		pdf.MultiCell(0, 5, tr(labels.Reason+": "+iv.Reason), "", "L", false)
		pdf.Ln(3)
	}

	if err := pdf.Output(w); err != nil {
		return fmt.Errorf("failed to write pdf: %w", err)
	}
	return nil
}

func outcomeLabel(r Report, labels Labels) string {
	switch {
	case !r.Ended:
		return labels.InProgress
	case r.Outcome == state.OutcomeSuccess:
		return labels.Success
	}
	return labels.Failure
}

func setEvaluationColor(pdf *gofpdf.Fpdf, ev Evaluation) {
	switch ev {
	case EvaluationPositive:
		pdf.SetTextColor(30, 130, 60)
	case EvaluationNegative:
		pdf.SetTextColor(190, 40, 40)
	default:
		pdf.SetTextColor(90, 90, 90)
	}
}

func reportHasHan(r Report) bool {
	if lang.HasHan(r.Summary) {
		return true
	}
	for _, iv := range r.Interventions {
		if lang.HasHan(iv.AdultMessage) || lang.HasHan(iv.ChildReply) || lang.HasHan(iv.Thought) {
			return true
		}
	}
	return false
}
