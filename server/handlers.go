package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/lugatuic/domainreport/export"
	"github.com/lugatuic/domainreport/handlers"
)

// XLSXContentType is the media type of generated reports.
const XLSXContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// Exporter runs one report export for a domain name.
type Exporter interface {
	Export(ctx context.Context, name string) (export.Result, error)
}

// ExportResponse is the JSON body returned by HandleExport.
type ExportResponse struct {
	Status   export.State `json:"status"`
	Domain   string       `json:"domain,omitempty"`
	Notice   string       `json:"notice,omitempty"`
	Users    int          `json:"users,omitempty"`
	Filename string       `json:"filename,omitempty"`
	Location string       `json:"location,omitempty"`
	Download string       `json:"download,omitempty"`
}

// HandleExport serves POST /v1/reports?domain=<name>. When downloadPrefix is
// non-empty the response carries a download URL for the stored report.
func HandleExport(exporter Exporter, downloadPrefix string, w http.ResponseWriter, r *http.Request) error {
	name, err := handlers.SanitizePartitionName(r.FormValue("domain"))
	if err != nil {
		http.Error(w, "invalid input: "+err.Error(), http.StatusBadRequest)
		return nil
	}

	ctxTimeout, cancel := context.WithTimeout(r.Context(), 2*time.Minute)
	defer cancel()

	res, err := exporter.Export(ctxTimeout, name)
	if err != nil {
		return err
	}

	body := ExportResponse{
		Status: res.State,
		Domain: res.Partition,
		Notice: res.Notice,
		Users:  res.Count,
	}

	status := http.StatusOK
	switch res.State {
	case export.StateIdle:
		status = http.StatusBadRequest
	case export.StateFailed:
		status = http.StatusNotFound
	case export.StateDone:
		status = http.StatusCreated
		body.Filename = res.Reference.Filename
		body.Location = res.Reference.Location
		if downloadPrefix != "" {
			body.Download = strings.TrimSuffix(downloadPrefix, "/") + "/" + url.PathEscape(res.Reference.Filename)
		}
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	return json.NewEncoder(w).Encode(body)
}

// HandleDownload serves a stored report from dir as an attachment.
func HandleDownload(dir, filename string, w http.ResponseWriter, r *http.Request) error {
	if !isReportFilename(filename) {
		http.Error(w, "invalid report name", http.StatusBadRequest)
		return nil
	}

	f, err := os.Open(filepath.Join(dir, filename))
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			http.Error(w, "report not found", http.StatusNotFound)
			return nil
		}
		return err
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return err
	}

	w.Header().Set("Content-Type", XLSXContentType)
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	http.ServeContent(w, r, filename, info.ModTime(), f)
	return nil
}

func isReportFilename(name string) bool {
	return name != "" &&
		filepath.Base(name) == name &&
		!strings.ContainsAny(name, `/\`) &&
		strings.HasPrefix(name, "UserReport-") &&
		strings.HasSuffix(name, ".xlsx")
}
