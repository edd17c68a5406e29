package rest

import (
	"context"
	"fmt"
	"net/http"

	"github.com/mgridtech/carfixit/internal/identity/domain"
	"github.com/mgridtech/carfixit/pkg/restclient"
)

type Gateway struct {
	c *restclient.Client
}

func NewGateway(c *restclient.Client) *Gateway {
	return &Gateway{c: c}
}

type userDTO struct {
	ID    int    `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
	Phone string `json:"phone"`
}

func (u userDTO) toDomain() domain.User {
	return domain.User{ID: u.ID, Name: u.Name, Email: u.Email, Phone: u.Phone}
}

func (g *Gateway) Login(ctx context.Context, input, password string) (domain.Session, domain.User, error) {
	req := map[string]string{"input": input, "password": password}
	var resp struct {
		User  userDTO `json:"user"`
		Token string  `json:"token"`
	}
	if err := g.c.Do(ctx, http.MethodPost, "/login/user", req, &resp); err != nil {
		return domain.Session{}, domain.User{}, err
	}
	sess := domain.Session{UserID: resp.User.ID, Token: resp.Token}
	g.c.SetToken(resp.Token)
	return sess, resp.User.toDomain(), nil
}

func (g *Gateway) Register(ctx context.Context, reg domain.Registration) (domain.User, error) {
	req := map[string]any{
		"name":     reg.Name,
		"email":    reg.Email,
		"phone":    reg.Phone,
		"password": reg.Password,
		"otpId":    reg.OTPID,
	}
	var resp struct {
		User userDTO `json:"user"`
	}
	if err := g.c.Do(ctx, http.MethodPost, "/user/registration", req, &resp); err != nil {
		return domain.User{}, err
	}
	return resp.User.toDomain(), nil
}

func (g *Gateway) GenerateOTP(ctx context.Context, email, otpType string) error {
	req := map[string]string{"email": email, "otpType": otpType}
	return g.c.Do(ctx, http.MethodPost, "/generateOtp", req, nil)
}

func (g *Gateway) VerifyOTP(ctx context.Context, email, otpType, code string) (int, error) {
	req := map[string]string{"email": email, "otpType": otpType, "otp": code}
	var resp struct {
		OTPID int `json:"otpId"`
	}
	if err := g.c.Do(ctx, http.MethodPost, "/verifyOtp", req, &resp); err != nil {
		return 0, err
	}
	return resp.OTPID, nil
}

func (g *Gateway) UpdatePassword(ctx context.Context, email, password string, otpID int) error {
	req := map[string]any{"email": email, "password": password, "otpId": otpID}
	return g.c.Do(ctx, http.MethodPatch, "/user/updatepassword", req, nil)
}

func (g *Gateway) Profile(ctx context.Context, userID int) (domain.User, error) {
	var resp userDTO
	path := fmt.Sprintf("/user/%d/getProfile", userID)
	if err := g.c.Do(ctx, http.MethodGet, path, nil, &resp); err != nil {
		return domain.User{}, err
	}
	return resp.toDomain(), nil
}

func (g *Gateway) UpdateProfile(ctx context.Context, userID int, u domain.User) error {
	req := map[string]string{"name": u.Name, "email": u.Email, "phone": u.Phone}
	path := fmt.Sprintf("/user/%d/updateprofile", userID)
	return g.c.Do(ctx, http.MethodPatch, path, req, nil)
}
