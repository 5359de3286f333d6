package httpadapter

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"caixa/contexts/identity-access/access-service/application"
	httptransport "caixa/contexts/identity-access/access-service/transport/http"
)

type Handler struct {
	Service application.Service
	Logger  *slog.Logger
}

func (h Handler) LoginHandler(ctx context.Context, req httptransport.LoginRequest) (httptransport.LoginResponse, error) {
	item, err := h.Service.Login(ctx, strings.TrimSpace(req.AccessCode))
	if err != nil {
		return httptransport.LoginResponse{}, err
	}
	resp := httptransport.LoginResponse{Status: "success"}
	resp.Data.Token = item.Token
	resp.Data.Name = item.DisplayName
	resp.Data.Role = string(item.Role)
	return resp, nil
}

func (h Handler) RegisterHandler(ctx context.Context, req httptransport.RegisterRequest) (httptransport.RegisterResponse, error) {
	item, err := h.Service.Register(ctx, strings.TrimSpace(req.Name), req.AccessCode)
	if err != nil {
		return httptransport.RegisterResponse{}, err
	}
	resp := httptransport.RegisterResponse{Status: "success"}
	resp.Data.IdentityID = item.IdentityID
	resp.Data.Name = item.DisplayName
	resp.Data.CreatedAt = item.CreatedAt.UTC().Format(time.RFC3339)
	return resp, nil
}
