package detectortool

import (
	"strconv"
	"strings"

	"github.com/jonwraymond/detectorsearch/catalog"
)

// formatResponse renders the filtered page and the total match count in the
// flat key=value format agents consume.
func formatResponse(records []catalog.Record, total uint64) string {
	var sb strings.Builder
	sb.WriteString("AnomalyDetectors=[")
	for _, rec := range records {
		sb.WriteString("{id=")
		sb.WriteString(rec.ID)
		sb.WriteString(",name=")
		sb.WriteString(rec.Name())
		sb.WriteString("}")
	}
	sb.WriteString("]TotalAnomalyDetectors=")
	sb.WriteString(strconv.FormatUint(total, 10))
	return sb.String()
}
