package reports

import (
	"bytes"
	"fmt"
	"sort"

	"github.com/xuri/excelize/v2"
)

// ExportMonthlyExcel renders the monthly report as an xlsx workbook.
func ExportMonthlyExcel(negocioNombre string, report *MonthlyReport) ([]byte, string, error) {
	f := excelize.NewFile()
	sheet := "Reporte Mensual"
	index, err := f.NewSheet(sheet)
	if err != nil {
		return nil, "", err
	}
	f.DeleteSheet("Sheet1")
	f.SetActiveSheet(index)

	f.SetCellValue(sheet, "A1", negocioNombre)
	f.SetCellValue(sheet, "A2", fmt.Sprintf("Periodo: %04d-%02d", report.Anio, report.Mes))

	f.SetCellValue(sheet, "A4", "Concepto")
	f.SetCellValue(sheet, "B4", "Valor")

	row := 5
	f.SetCellValue(sheet, fmt.Sprintf("A%d", row), "Clientes nuevos")
	f.SetCellValue(sheet, fmt.Sprintf("B%d", row), report.ClientesNuevos)
	row++
	f.SetCellValue(sheet, fmt.Sprintf("A%d", row), "Pagos registrados")
	f.SetCellValue(sheet, fmt.Sprintf("B%d", row), report.PagosRegistrados)
	row++
	f.SetCellValue(sheet, fmt.Sprintf("A%d", row), "Ingresos (PAGADO)")
	f.SetCellValue(sheet, fmt.Sprintf("B%d", row), report.IngresosTotal)
	row += 2

	f.SetCellValue(sheet, fmt.Sprintf("A%d", row), "Citas por estado")
	row++

	estados := make([]string, 0, len(report.CitasPorEstado))
	for estado := range report.CitasPorEstado {
		estados = append(estados, estado)
	}
	sort.Strings(estados)
	for _, estado := range estados {
		f.SetCellValue(sheet, fmt.Sprintf("A%d", row), estado)
		f.SetCellValue(sheet, fmt.Sprintf("B%d", row), report.CitasPorEstado[estado])
		row++
	}

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, "", err
	}

	filename := fmt.Sprintf("reporte_mensual_%04d_%02d.xlsx", report.Anio, report.Mes)
	return buf.Bytes(), filename, nil
}
