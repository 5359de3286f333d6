package httpserver

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strings"

	ledger "caixa/contexts/finance-core/ledger-service"
	ledgerentities "caixa/contexts/finance-core/ledger-service/domain/entities"
	ledgererrors "caixa/contexts/finance-core/ledger-service/domain/errors"
	ledgerports "caixa/contexts/finance-core/ledger-service/ports"
	ledgerhttp "caixa/contexts/finance-core/ledger-service/transport/http"
	access "caixa/contexts/identity-access/access-service"
	accesserrors "caixa/contexts/identity-access/access-service/domain/errors"
	accesshttp "caixa/contexts/identity-access/access-service/transport/http"

	httpSwagger "github.com/swaggo/http-swagger"
	_ "caixa/internal/platform/httpserver/docs"
)

type Server struct {
	mux    *http.ServeMux
	logger *slog.Logger
	addr   string
	access access.Module
	ledger ledger.Module
}

func New(
	accessModule access.Module,
	ledgerModule ledger.Module,
	logger *slog.Logger,
	addr string,
) *Server {
	if logger == nil {
		logger = slog.Default()
	}
	if addr == "" {
		addr = ":8080"
	}

	s := &Server{
		mux:    http.NewServeMux(),
		logger: logger,
		addr:   addr,
		access: accessModule,
		ledger: ledgerModule,
	}
	s.registerRoutes()
	return s
}

func (s *Server) Start() error {
	s.logger.Info("http server starting",
		"event", "http_server_starting",
		"module", "internal/platform/httpserver",
		"layer", "platform",
		"addr", s.addr,
	)
	return http.ListenAndServe(s.addr, s.mux)
}

func (s *Server) registerRoutes() {
	s.mux.Handle("/swagger/", httpSwagger.Handler(
		httpSwagger.URL("/swagger/doc.json"),
	))

	s.mux.HandleFunc("POST /api/auth/login", s.handleLogin)
	s.mux.HandleFunc("POST /api/auth/register", s.handleRegister)

	s.mux.HandleFunc("GET /api/transactions", s.handleListTransactions)
	s.mux.HandleFunc("POST /api/transactions", s.handleCreateTransaction)
	s.mux.HandleFunc("DELETE /api/transactions/{transaction_id}", s.handleDeleteTransaction)
}

func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	var req accesshttp.LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeAccessError(w, http.StatusBadRequest, "invalid_json", "request body must be valid JSON")
		return
	}
	resp, err := s.access.Handler.LoginHandler(r.Context(), req)
	if err != nil {
		writeAccessDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleRegister(w http.ResponseWriter, r *http.Request) {
	var req accesshttp.RegisterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeAccessError(w, http.StatusBadRequest, "invalid_json", "request body must be valid JSON")
		return
	}
	resp, err := s.access.Handler.RegisterHandler(r.Context(), req)
	if err != nil {
		writeAccessDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleListTransactions(w http.ResponseWriter, r *http.Request) {
	caller, ok := s.resolveCaller(w, r)
	if !ok {
		return
	}
	resp, err := s.ledger.Handler.ListTransactionsHandler(r.Context(), caller)
	if err != nil {
		writeLedgerDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleCreateTransaction(w http.ResponseWriter, r *http.Request) {
	caller, ok := s.resolveCaller(w, r)
	if !ok {
		return
	}

	var req ledgerhttp.CreateTransactionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeLedgerError(w, http.StatusBadRequest, "invalid_json", "request body must be valid JSON")
		return
	}
	resp, err := s.ledger.Handler.CreateTransactionHandler(r.Context(), caller, req)
	if err != nil {
		writeLedgerDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleDeleteTransaction(w http.ResponseWriter, r *http.Request) {
	caller, ok := s.resolveCaller(w, r)
	if !ok {
		return
	}
	resp, err := s.ledger.Handler.DeleteTransactionHandler(r.Context(), caller, r.PathValue("transaction_id"))
	if err != nil {
		writeLedgerDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

// resolveCaller verifies the bearer credential and maps the verified claims
// into the ledger module's caller context. A failed verification writes the
// 401 response itself.
func (s *Server) resolveCaller(w http.ResponseWriter, r *http.Request) (ledgerports.Caller, bool) {
	caller, err := s.access.Guard.Verify(bearerToken(r))
	if err != nil {
		writeAccessDomainError(w, err)
		return ledgerports.Caller{}, false
	}
	return ledgerports.Caller{
		IdentityID: caller.IdentityID,
		Role:       ledgerentities.Role(caller.Role),
	}, true
}

// bearerToken prefers the Authorization header; the legacy auth-token header
// is kept for older clients.
func bearerToken(r *http.Request) string {
	authorization := strings.TrimSpace(r.Header.Get("Authorization"))
	if rest, found := strings.CutPrefix(authorization, "Bearer "); found {
		return strings.TrimSpace(rest)
	}
	return strings.TrimSpace(r.Header.Get("auth-token"))
}

func writeAccessDomainError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, accesserrors.ErrInvalidAccessCode):
		writeAccessError(w, http.StatusBadRequest, "invalid_access_code", err.Error())
	case errors.Is(err, accesserrors.ErrInvalidRegistration):
		writeAccessError(w, http.StatusBadRequest, "invalid_registration", err.Error())
	case errors.Is(err, accesserrors.ErrDisplayNameConflict):
		writeAccessError(w, http.StatusConflict, "display_name_conflict", err.Error())
	case errors.Is(err, accesserrors.ErrUnauthenticated):
		writeAccessError(w, http.StatusUnauthorized, "unauthenticated", err.Error())
	default:
		writeAccessError(w, http.StatusInternalServerError, "internal_error", "internal server error")
	}
}

func writeLedgerDomainError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, ledgererrors.ErrMasterReadOnly):
		writeLedgerError(w, http.StatusForbidden, "master_read_only", err.Error())
	case errors.Is(err, ledgererrors.ErrNotFoundOrForbidden):
		writeLedgerError(w, http.StatusNotFound, "not_found_or_forbidden", err.Error())
	case errors.Is(err, ledgererrors.ErrInvalidTransactionInput):
		writeLedgerError(w, http.StatusBadRequest, "invalid_transaction_input", err.Error())
	case errors.Is(err, ledgererrors.ErrUnknownRole):
		writeLedgerError(w, http.StatusForbidden, "unknown_role", err.Error())
	default:
		writeLedgerError(w, http.StatusInternalServerError, "internal_error", "internal server error")
	}
}

func writeAccessError(w http.ResponseWriter, status int, code string, message string) {
	writeJSON(w, status, accesshttp.ErrorResponse{
		Code:    code,
		Message: message,
	})
}

func writeLedgerError(w http.ResponseWriter, status int, code string, message string) {
	writeJSON(w, status, ledgerhttp.ErrorResponse{
		Code:    code,
		Message: message,
	})
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}
