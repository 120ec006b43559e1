package iostore

import (
	"fmt"
	"io"

	"github.com/huangsam/covidash/internal/contract"
	"github.com/huangsam/covidash/schema"
)

// PrintStoreStatus prints dataset store status information.
func PrintStoreStatus(w io.Writer, status schema.StoreStatus) {
	_, _ = fmt.Fprintf(w, "Store Backend: %s\n", status.Backend)
	_, _ = fmt.Fprintf(w, "Connected: %t\n", status.Connected)
	if !status.Connected {
		return
	}
	_, _ = fmt.Fprintf(w, "Total Records: %s\n", contract.FormatCount(int64(status.TotalRecords)))
	if status.TotalRecords == 0 {
		return
	}
	_, _ = fmt.Fprintf(w, "Countries: %d\n", status.Countries)
	_, _ = fmt.Fprintf(w, "Date Range: %s to %s\n", schema.FormatDate(status.FirstDate), schema.FormatDate(status.LastDate))
	_, _ = fmt.Fprintf(w, "Source: %s\n", status.SourceName)
	_, _ = fmt.Fprintf(w, "Imported At: %s\n", status.ImportedAt.Format("2006-01-02 15:04:05"))
}
