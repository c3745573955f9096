package main

import (
	"log/slog"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/rs/cors"

	generate_report "vue-estate/http-server/generate-report/generate-excel"
	itemdelete "vue-estate/http-server/line-item/delete"
	itemget "vue-estate/http-server/line-item/get"
	itemsave "vue-estate/http-server/line-item/save"
	itemupdate "vue-estate/http-server/line-item/update"
	"vue-estate/http-server/reconcile"
	tmpldelete "vue-estate/http-server/template/delete"
	tmplget "vue-estate/http-server/template/get"
	tmplsave "vue-estate/http-server/template/save"
	tmplupdate "vue-estate/http-server/template/update"
	totalcost "vue-estate/http-server/total-cost"
	"vue-estate/internal/config"
	"vue-estate/internal/middleware/auth"
	"vue-estate/internal/service/catalog"
	"vue-estate/internal/service/costing"
	generate_excel "vue-estate/internal/service/generate-excel"
)

func routes(cfg config.Config, log *slog.Logger, catalogService *catalog.CatalogService, costService *costing.CostService, reportService *generate_excel.GenerateExcelService) *chi.Mux {
	router := chi.NewRouter()

	corsHandler := cors.New(cors.Options{
		AllowedOrigins:   []string{"http://localhost:8081", "http://localhost:5173"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: true,
	})

	router.Use(corsHandler.Handler)

	router.Use(middleware.RequestID)
	router.Use(middleware.RealIP)
	router.Use(middleware.Logger)
	router.Use(middleware.Recoverer)

	// Catalog, read-only for the form layer.
	router.Get("/api/templates", tmplget.GetTemplates(log, catalogService))
	router.Get("/api/templates/{id}", tmplget.GetTemplate(log, catalogService))

	// Line items of one viewing.
	router.Get("/api/viewings/{id}/line-items", itemget.GetLineItems(log, costService))
	router.Post("/api/line-items", itemsave.SaveLineItem(log, costService))
	router.Put("/api/line-items/{id}", itemupdate.UpdateLineItem(log, costService))
	router.Delete("/api/line-items/{id}", itemdelete.DeleteLineItem(log, costService))

	// Bulk reconcile plus the pre-fill it starts from.
	router.Get("/api/viewings/{id}/suggestions", reconcile.GetSuggestions(log, costService))
	router.Post("/api/viewings/{id}/reconcile", reconcile.ReconcileLineItems(log, costService))

	// Total-cost breakdown for the read-only display.
	router.Get("/api/viewings/{id}/total-cost", totalcost.GetTotalCost(log, costService))

	// Excel export of the same breakdown.
	router.Get("/api/viewings/{id}/report/excel", generate_report.GenerateReportExcel(log, reportService))

	adminRouter := chi.NewRouter()
	adminRouter.Use(auth.BasicAuth(cfg.AdminLogin, cfg.AdminPass))

	adminRouter.Get("/templates", tmplget.GetTemplates(log, catalogService))
	adminRouter.Get("/templates/{id}", tmplget.GetTemplate(log, catalogService))
	adminRouter.Post("/templates/new", tmplsave.SaveTemplateAdmin(log, catalogService))
	adminRouter.Put("/templates/update/{id}", tmplupdate.UpdateTemplateAdmin(log, catalogService))
	adminRouter.Delete("/templates/delete/{id}", tmpldelete.DeleteTemplateAdmin(log, catalogService))

	router.Mount("/api/admin", adminRouter)

	return router
}
