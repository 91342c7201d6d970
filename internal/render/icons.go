package render

import (
	"os"
	"path/filepath"
	"strings"

	"deployment-report-service/internal/dataset"
	apperrors "deployment-report-service/pkg/errors"
	"deployment-report-service/pkg/logger"
)

// IconResolver maps a logical icon name to PNG bytes. A false second
// return means the icon is unavailable and the caller falls back to a
// text header.
type IconResolver interface {
	Resolve(name string) ([]byte, bool)
}

// iconNames maps display columns to the logical icon drawn in their
// header cell. Columns without an entry always use text headers.
var iconNames = map[string]string{
	dataset.ColVehicles:        "movil",
	dataset.ColSubOfficers:     "ssoo",
	dataset.ColMotorcycles:     "moto",
	dataset.ColMounted:         "hipo",
	dataset.ColPersonnelOnFoot: "pie_tierra",
	dataset.ColShockPosted:     "choque",
	dataset.ColPersonnelTotal:  "total",
	dataset.ColStartTime:       "inicio",
	dataset.ColEndTime:         "fin",
	dataset.ColSection:         "seccional",
}

// shortHeaders are the compact text fallbacks used when an icon cannot
// be resolved. Columns not listed fall back to their full name.
var shortHeaders = map[string]string{
	dataset.ColVehicles:        "MÓVILES",
	dataset.ColPersonnelOnFoot: "PIE TIERRA",
	dataset.ColShockPosted:     "CH. APOSTADO",
	dataset.ColPersonnelTotal:  "TOTAL",
	dataset.ColStartTime:       "HORA\nINICIO",
	dataset.ColEndTime:         "HORA\nFIN",
}

// DirResolver resolves icons from PNG files in a directory, caching
// reads for the lifetime of the resolver. Missing or unreadable files
// resolve to false; a document is never aborted over an icon.
type DirResolver struct {
	dir   string
	cache map[string][]byte
	log   logger.Logger
}

// NewDirResolver returns a resolver over dir. The directory is not
// required to exist; every lookup simply fails soft.
func NewDirResolver(dir string, log logger.Logger) *DirResolver {
	if log == nil {
		log = logger.GetGlobalLogger()
	}
	return &DirResolver{
		dir:   dir,
		cache: make(map[string][]byte),
		log:   log.WithComponent("icons"),
	}
}

func (r *DirResolver) Resolve(name string) ([]byte, bool) {
	if r.dir == "" {
		return nil, false
	}
	if data, ok := r.cache[name]; ok {
		return data, data != nil
	}
	path := filepath.Join(r.dir, name+".png")
	data, err := os.ReadFile(path)
	if err != nil {
		r.cache[name] = nil
		r.log.WithError(apperrors.AssetError(apperrors.CodeIconNotFound, name, err)).
			Debug("icon not found, using text header")
		return nil, false
	}
	if !isPNG(data) {
		r.cache[name] = nil
		r.log.WithError(apperrors.AssetError(apperrors.CodeIconUnreadable, name, nil).
			WithContext("path", path)).
			Warn("icon file is not a valid PNG, using text header")
		return nil, false
	}
	r.cache[name] = data
	return data, true
}

func isPNG(data []byte) bool {
	return len(data) >= 8 && strings.HasPrefix(string(data), "\x89PNG\r\n\x1a\n")
}

// NoIcons is a resolver that never resolves, forcing text headers.
type NoIcons struct{}

func (NoIcons) Resolve(string) ([]byte, bool) { return nil, false }
