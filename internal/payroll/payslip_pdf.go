package payroll

import (
	"bytes"
	"fmt"
	"strings"
)

// buildPayslipPDF renders a one-page text payslip as a minimal PDF.
// No PDF library is needed for a fixed single-column layout.
func buildPayslipPDF(companyName string, slip SlipResponse) []byte {
	lines := []string{
		companyName,
		"SALARY SLIP - " + slip.Month,
		"",
		"Employee: " + slip.Name,
		"Employee ID: " + slip.EmployeeID,
		"",
		"EARNINGS",
		payslipLine("Basic", slip.Basic),
		payslipLine("HRA", slip.HRA),
		payslipLine("Allowances", slip.Allowances),
		payslipLine("Overtime", slip.Overtime),
		payslipLine("Gross", slip.Gross),
		"",
		"DEDUCTIONS",
		payslipLine("Professional Tax", slip.ProfessionalTax),
		payslipLine("Provident Fund", slip.ProvidentFund),
		payslipLine("ESI", slip.ESI),
		payslipLine("TDS", slip.TDS),
		payslipLine("Total Deductions", slip.TotalDeductions),
		"",
		payslipLine("NET PAY", slip.Net),
	}
	return writeSimplePDF(lines)
}

func payslipLine(label string, amount int64) string {
	return fmt.Sprintf("%-20s %d.%02d", label, amount/100, amount%100)
}

// writeSimplePDF emits a single-page PDF with one Helvetica text block
// per input line.
func writeSimplePDF(lines []string) []byte {
	var content strings.Builder
	content.WriteString("BT\n/F1 12 Tf\n14 TL\n50 800 Td\n")
	for i, line := range lines {
		if i > 0 {
			content.WriteString("T* ")
		}
		fmt.Fprintf(&content, "(%s) Tj\n", pdfEscape(line))
	}
	content.WriteString("ET")

	stream := content.String()
	objects := []string{
		"1 0 obj\n<< /Type /Catalog /Pages 2 0 R >>\nendobj\n",
		"2 0 obj\n<< /Type /Pages /Kids [3 0 R] /Count 1 >>\nendobj\n",
		"3 0 obj\n<< /Type /Page /Parent 2 0 R /MediaBox [0 0 595 842] /Resources << /Font << /F1 4 0 R >> >> /Contents 5 0 R >>\nendobj\n",
		"4 0 obj\n<< /Type /Font /Subtype /Type1 /BaseFont /Helvetica >>\nendobj\n",
		fmt.Sprintf("5 0 obj\n<< /Length %d >>\nstream\n%s\nendstream\nendobj\n", len(stream), stream),
	}

	var out bytes.Buffer
	out.WriteString("%PDF-1.4\n")
	offsets := make([]int, 0, len(objects)+1)
	offsets = append(offsets, 0)
	for _, obj := range objects {
		offsets = append(offsets, out.Len())
		out.WriteString(obj)
	}

	xrefStart := out.Len()
	fmt.Fprintf(&out, "xref\n0 %d\n", len(offsets))
	out.WriteString("0000000000 65535 f \n")
	for i := 1; i < len(offsets); i++ {
		fmt.Fprintf(&out, "%010d 00000 n \n", offsets[i])
	}
	fmt.Fprintf(&out, "trailer\n<< /Size %d /Root 1 0 R >>\nstartxref\n%d\n%%%%EOF", len(offsets), xrefStart)

	return out.Bytes()
}

func pdfEscape(v string) string {
	replacer := strings.NewReplacer("\\", "\\\\", "(", "\\(", ")", "\\)")
	return replacer.Replace(v)
}
