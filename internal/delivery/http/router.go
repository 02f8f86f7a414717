package http

import (
	"net/http"

	"hd-clinic-api/internal/delivery/http/handler"
	"hd-clinic-api/internal/delivery/http/middleware"

	"github.com/gorilla/mux"
)

type Router struct {
	router            *mux.Router
	authHandler       *handler.AuthHandler
	patientHandler    *handler.PatientHandler
	scheduleHandler   *handler.ScheduleHandler
	sessionHandler    *handler.SessionHandler
	monitoringHandler *handler.MonitoringHandler
	missedHandler     *handler.MissedAppointmentHandler
	auditLogHandler   *handler.AuditLogHandler
	authMiddleware    *middleware.AuthMiddleware
	corsMiddleware    *middleware.CORSMiddleware
}

func NewRouter(
	authHandler *handler.AuthHandler,
	patientHandler *handler.PatientHandler,
	scheduleHandler *handler.ScheduleHandler,
	sessionHandler *handler.SessionHandler,
	monitoringHandler *handler.MonitoringHandler,
	missedHandler *handler.MissedAppointmentHandler,
	auditLogHandler *handler.AuditLogHandler,
	authMiddleware *middleware.AuthMiddleware,
	corsMiddleware *middleware.CORSMiddleware,
) *Router {
	return &Router{
		router:            mux.NewRouter(),
		authHandler:       authHandler,
		patientHandler:    patientHandler,
		scheduleHandler:   scheduleHandler,
		sessionHandler:    sessionHandler,
		monitoringHandler: monitoringHandler,
		missedHandler:     missedHandler,
		auditLogHandler:   auditLogHandler,
		authMiddleware:    authMiddleware,
		corsMiddleware:    corsMiddleware,
	}
}

func (r *Router) Setup() *mux.Router {
	// API versioning
	api := r.router.PathPrefix("/api/v1").Subrouter()

	// Health check
	api.HandleFunc("/health", r.healthCheck).Methods(http.MethodGet)

	// Auth routes (public)
	auth := api.PathPrefix("/auth").Subrouter()
	auth.HandleFunc("/login", r.authHandler.Login).Methods(http.MethodPost)
	auth.HandleFunc("/refresh-token", r.authHandler.RefreshToken).Methods(http.MethodPost)

	// Auth routes (protected)
	authProtected := api.PathPrefix("/auth").Subrouter()
	authProtected.Use(r.authMiddleware.Authenticate)
	authProtected.HandleFunc("/logout", r.authHandler.Logout).Methods(http.MethodPost)
	authProtected.HandleFunc("/me", r.authHandler.Me).Methods(http.MethodGet)

	// Staff registration (admin only)
	admin := api.PathPrefix("/admin").Subrouter()
	admin.Use(r.authMiddleware.Authenticate)
	admin.Use(middleware.RequireAdmin)
	admin.HandleFunc("/staff", r.authHandler.RegisterStaff).Methods(http.MethodPost)

	// Patient management (clinical staff)
	patients := api.PathPrefix("/patients").Subrouter()
	patients.Use(r.authMiddleware.Authenticate)
	patients.Use(middleware.RequireClinical)
	patients.HandleFunc("", r.patientHandler.CreatePatient).Methods(http.MethodPost)
	patients.HandleFunc("", r.patientHandler.ListPatients).Methods(http.MethodGet)
	patients.HandleFunc("/{id}", r.patientHandler.GetPatient).Methods(http.MethodGet)
	patients.HandleFunc("/{id}", r.patientHandler.UpdatePatient).Methods(http.MethodPut)
	patients.HandleFunc("/{id}", r.patientHandler.DeactivatePatient).Methods(http.MethodDelete)

	// Schedule board and bed availability (any authenticated staff)
	schedule := api.PathPrefix("/schedule").Subrouter()
	schedule.Use(r.authMiddleware.Authenticate)
	schedule.HandleFunc("", r.scheduleHandler.GetDailySchedule).Methods(http.MethodGet)
	schedule.HandleFunc("/slots/{slot_id}/availability", r.scheduleHandler.GetBedAvailability).Methods(http.MethodGet)

	// Session scheduling and phase workflow (clinical staff)
	sessions := api.PathPrefix("/sessions").Subrouter()
	sessions.Use(r.authMiddleware.Authenticate)
	sessions.Use(middleware.RequireClinical)
	sessions.HandleFunc("", r.scheduleHandler.CreateSession).Methods(http.MethodPost)
	sessions.HandleFunc("/{id}", r.scheduleHandler.GetSession).Methods(http.MethodGet)
	sessions.HandleFunc("/{id}/bed", r.scheduleHandler.AssignBed).Methods(http.MethodPut)
	sessions.HandleFunc("/{id}/pre-dialysis", r.sessionHandler.SubmitPreDialysis).Methods(http.MethodPost)
	sessions.HandleFunc("/{id}/end-treatment", r.sessionHandler.EndTreatment).Methods(http.MethodPost)
	sessions.HandleFunc("/{id}/post-dialysis", r.sessionHandler.SubmitPostDialysis).Methods(http.MethodPost)

	// Intra-dialysis monitoring (clinical staff plus technicians)
	monitoring := api.PathPrefix("/sessions").Subrouter()
	monitoring.Use(r.authMiddleware.Authenticate)
	monitoring.Use(middleware.RequireMonitoring)
	monitoring.HandleFunc("/{id}/monitoring", r.monitoringHandler.AddRecord).Methods(http.MethodPost)
	monitoring.HandleFunc("/{id}/monitoring", r.monitoringHandler.ListRecords).Methods(http.MethodGet)

	// Missed appointment workflow (clinical staff)
	missed := api.PathPrefix("/missed-appointments").Subrouter()
	missed.Use(r.authMiddleware.Authenticate)
	missed.Use(middleware.RequireClinical)
	missed.HandleFunc("/candidates", r.missedHandler.NoShowCandidates).Methods(http.MethodGet)
	missed.HandleFunc("/mark", r.missedHandler.MarkMissed).Methods(http.MethodPost)
	missed.HandleFunc("/resolve", r.missedHandler.ResolveMissed).Methods(http.MethodPost)

	// Audit trail (admin and HOD)
	audit := api.PathPrefix("/audit-logs").Subrouter()
	audit.Use(r.authMiddleware.Authenticate)
	audit.Use(middleware.RequireAuditRead)
	audit.HandleFunc("", r.auditLogHandler.ListLogs).Methods(http.MethodGet)
	audit.HandleFunc("/{id}", r.auditLogHandler.GetLog).Methods(http.MethodGet)

	// Add CORS middleware
	r.router.Use(r.corsMiddleware.Handle)

	return r.router
}

func (r *Router) healthCheck(w http.ResponseWriter, req *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(`{"status": "ok"}`))
}
