package handler

import (
	"github.com/labstack/echo/v4"

	"rivalioo/internal/domain/repository"
	"rivalioo/internal/infrastructure/firebase"
	"rivalioo/pkg/errors"
	"rivalioo/pkg/response"
)

type DevTokenHandler struct {
	firebaseAuth *firebase.FirebaseAuthClient
	profileRepo  repository.ProfileRepository
}

var devTokenHandler *DevTokenHandler

func NewDevTokenHandler(firebaseAuth *firebase.FirebaseAuthClient, profileRepo repository.ProfileRepository) *DevTokenHandler {
	return &DevTokenHandler{
		firebaseAuth: firebaseAuth,
		profileRepo:  profileRepo,
	}
}

func SetupDevTokenHandler(firebaseAuth *firebase.FirebaseAuthClient, profileRepo repository.ProfileRepository) {
	devTokenHandler = NewDevTokenHandler(firebaseAuth, profileRepo)
}

func GetDevTokenHandler() *DevTokenHandler {
	return devTokenHandler
}

// GenerateToken mints a custom token for an existing profile. The client
// exchanges it for an ID token with the Firebase SDK.
func (h *DevTokenHandler) GenerateToken(c echo.Context) error {
	uid := c.QueryParam("uid")
	if uid == "" {
		return response.Error(c, errors.BadRequest("uid is required", nil))
	}

	profile, err := h.profileRepo.GetByID(c.Request().Context(), uid)
	if err != nil {
		return response.Error(c, err)
	}

	token, err := h.firebaseAuth.GenerateDevToken(c.Request().Context(), profile.ID)
	if err != nil {
		return response.Error(c, errors.Internal("Failed to generate token", err))
	}

	return response.Success(c, map[string]interface{}{
		"custom_token": token,
		"profile":      profile,
	})
}
