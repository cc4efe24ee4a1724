// Package tabular parsea texto delimitado (primera línea = headers) en
// filas header→valor, sin coerción de tipos: todos los valores quedan como
// strings y la conversión a número/timestamp es responsabilidad del
// consumidor. El parser es deliberadamente leniente: una fila corta no es
// un error, los campos que faltan simplemente no aparecen en el map.
package tabular

import "strings"

// Row es una fila parseada. Las claves ausentes (fila corta) no existen
// en el map — se distinguen del string vacío con Has.
type Row map[string]string

// Has indica si la columna estaba presente en la fila de origen.
func (r Row) Has(key string) bool {
	_, ok := r[key]
	return ok
}

// Table es el resultado de un parse: headers en orden de archivo y filas
// en orden de archivo. El orden es semánticamente significativo
// (cronológico) y no se reordena nunca.
type Table struct {
	Headers []string
	Rows    []Row
}

// Parse convierte texto delimitado en una Table. El input completo se
// recorta de whitespace antes de partir en líneas; cada campo se recorta
// individualmente. Un input vacío produce un header vacío y cero filas —
// caso degenerado aceptado, los consumidores manejan cero filas.
func Parse(raw, delim string) Table {
	lines := strings.Split(strings.TrimSpace(raw), "\n")

	headers := splitFields(lines[0], delim)

	rows := make([]Row, 0, len(lines)-1)
	for _, line := range lines[1:] {
		fields := splitFields(line, delim)
		row := make(Row, len(headers))
		for i, h := range headers {
			if i < len(fields) {
				row[h] = fields[i]
			}
		}
		rows = append(rows, row)
	}

	return Table{Headers: headers, Rows: rows}
}

func splitFields(line, delim string) []string {
	fields := strings.Split(line, delim)
	for i := range fields {
		fields[i] = strings.TrimSpace(fields[i])
	}
	return fields
}
