package admin

import (
	"net/http"

	"github.com/MonkyMars/gecho"
)

// GetSite returns the console branding. The values load once at startup;
// nothing mutates them afterwards.
func (ar *AdminRoutesManager) GetSite(w http.ResponseWriter, r *http.Request) {
	gecho.Success(w,
		gecho.WithData(map[string]any{
			"site_header": ar.cfg.Admin.SiteHeader,
			"site_title":  ar.cfg.Admin.SiteTitle,
			"index_title": ar.cfg.Admin.IndexTitle,
		}),
		gecho.Send(),
	)
}
