// Package users encapsulates the profile routes of the authenticated user: reading and
// updating the profile, deleting the account, and managing the avatar image.
// This file, `handlers.go`, is responsible for the HTTP side of those operations.
package users

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/user/taskmanager-go/apperror"
	"github.com/user/taskmanager-go/auth"
)

// multipartOverhead is the slack allowed on top of MaxAvatarBytes for the multipart framing.
const multipartOverhead = 64 << 10

// UserHandlers provides HTTP handlers for user profile management.
type UserHandlers struct {
	service *UserService
}

// NewUserHandlers creates new UserHandlers.
func NewUserHandlers(service *UserService) *UserHandlers {
	return &UserHandlers{service: service}
}

// HandleGetProfile godoc
// @Summary Get current user's profile
// @Description Returns the profile of the authenticated user.
// @Tags Users
// @Produce json
// @Security BearerAuth
// @Success 200 {object} store.User "Successfully retrieved user profile"
// @Failure 401 {object} apperror.ErrorResponse "Please authenticate."
// @Router /users/me [get]
func (h *UserHandlers) HandleGetProfile() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		user, ok := auth.UserFromContext(r.Context())
		if !ok {
			auth.WriteError(w, r, apperror.NewUnauthorizedError("Please authenticate.", nil))
			return
		}
		auth.WriteJSON(w, http.StatusOK, user)
	}
}

// HandleUpdateProfile godoc
// @Summary Update current user's profile
// @Description Updates name, email and/or password. Any other field fails the whole request
// @Description and nothing is changed.
// @Tags Users
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param userProfile body UpdateProfileRequest true "Fields to update"
// @Success 200 {object} store.User "Successfully updated user profile"
// @Failure 400 {object} apperror.ErrorResponse "Invalid updates, invalid value or email already in use"
// @Failure 401 {object} apperror.ErrorResponse "Please authenticate."
// @Failure 500 {object} apperror.ErrorResponse "Internal Server Error"
// @Router /users/me [patch]
func (h *UserHandlers) HandleUpdateProfile() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		user, ok := auth.UserFromContext(r.Context())
		if !ok {
			auth.WriteError(w, r, apperror.NewUnauthorizedError("Please authenticate.", nil))
			return
		}

		var req UpdateProfileRequest
		if err := auth.DecodePatch(r, &req, updatableFields...); err != nil {
			auth.WriteError(w, r, err)
			return
		}

		updated, err := h.service.UpdateProfile(r.Context(), user, &req)
		if err != nil {
			auth.WriteError(w, r, err)
			return
		}
		auth.WriteJSON(w, http.StatusOK, updated)
	}
}

// HandleDeleteAccount godoc
// @Summary Delete current user
// @Description Deletes the authenticated user and all of its tasks, and returns the deleted user.
// @Tags Users
// @Produce json
// @Security BearerAuth
// @Success 200 {object} store.User "Deleted user"
// @Failure 401 {object} apperror.ErrorResponse "Please authenticate."
// @Failure 500 {object} apperror.ErrorResponse "Internal Server Error"
// @Router /users/me [delete]
func (h *UserHandlers) HandleDeleteAccount() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		user, ok := auth.UserFromContext(r.Context())
		if !ok {
			auth.WriteError(w, r, apperror.NewUnauthorizedError("Please authenticate.", nil))
			return
		}

		deleted, err := h.service.DeleteAccount(r.Context(), user)
		if err != nil {
			auth.WriteError(w, r, err)
			return
		}
		auth.WriteJSON(w, http.StatusOK, deleted)
	}
}

// HandleUploadAvatar godoc
// @Summary Upload avatar
// @Description Accepts a JPEG or PNG (at most 1 MB) in the multipart field "avatar" and stores it
// @Description as a 250x250 PNG.
// @Tags Users
// @Accept multipart/form-data
// @Security BearerAuth
// @Param avatar formData file true "Avatar image (.jpg, .jpeg or .png)"
// @Success 200 "Avatar stored"
// @Failure 400 {object} apperror.ErrorResponse "Missing file, too large, or not an image"
// @Failure 401 {object} apperror.ErrorResponse "Please authenticate."
// @Failure 500 {object} apperror.ErrorResponse "Internal Server Error"
// @Router /users/me/avatar [post]
func (h *UserHandlers) HandleUploadAvatar() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		user, ok := auth.UserFromContext(r.Context())
		if !ok {
			auth.WriteError(w, r, apperror.NewUnauthorizedError("Please authenticate.", nil))
			return
		}

		r.Body = http.MaxBytesReader(w, r.Body, MaxAvatarBytes+multipartOverhead)
		if err := r.ParseMultipartForm(MaxAvatarBytes); err != nil {
			var tooLarge *http.MaxBytesError
			if errors.As(err, &tooLarge) {
				auth.WriteError(w, r, apperror.NewValidationError("File too large", err))
				return
			}
			auth.WriteError(w, r, apperror.NewValidationError("Please upload an image", err))
			return
		}
		defer r.MultipartForm.RemoveAll()

		file, header, err := r.FormFile("avatar")
		if err != nil {
			auth.WriteError(w, r, apperror.NewValidationError("Please upload an image", err))
			return
		}
		defer file.Close()

		if header.Size > MaxAvatarBytes {
			auth.WriteError(w, r, apperror.NewValidationError("File too large", nil))
			return
		}
		if !AcceptsAvatarFilename(header.Filename) {
			auth.WriteError(w, r, apperror.NewValidationError("Please upload an image", nil))
			return
		}

		png, err := NormalizeAvatar(file)
		if err != nil {
			auth.WriteError(w, r, apperror.NewValidationError("Please upload an image", err))
			return
		}

		if err := h.service.SetAvatar(r.Context(), user.ID, png); err != nil {
			auth.WriteError(w, r, err)
			return
		}
		w.WriteHeader(http.StatusOK)
	}
}

// HandleDeleteAvatar godoc
// @Summary Delete avatar
// @Description Removes the avatar of the authenticated user.
// @Tags Users
// @Security BearerAuth
// @Success 200 "Avatar removed"
// @Failure 401 {object} apperror.ErrorResponse "Please authenticate."
// @Failure 500 {object} apperror.ErrorResponse "Internal Server Error"
// @Router /users/me/avatar [delete]
func (h *UserHandlers) HandleDeleteAvatar() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		user, ok := auth.UserFromContext(r.Context())
		if !ok {
			auth.WriteError(w, r, apperror.NewUnauthorizedError("Please authenticate.", nil))
			return
		}

		if err := h.service.DeleteAvatar(r.Context(), user.ID); err != nil {
			auth.WriteError(w, r, err)
			return
		}
		w.WriteHeader(http.StatusOK)
	}
}

// HandleGetAvatar godoc
// @Summary Get a user's avatar
// @Description Returns the stored avatar of any user as a PNG image. No authentication required.
// @Tags Users
// @Produce png
// @Param id path string true "User ID"
// @Success 200 {file} binary "PNG image"
// @Failure 404 {object} apperror.ErrorResponse "User or avatar not found"
// @Router /users/{id}/avatar [get]
func (h *UserHandlers) HandleGetAvatar() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		// A malformed ID cannot name any user, so it is reported the same way as a missing one.
		userID, err := uuid.Parse(chi.URLParam(r, "id"))
		if err != nil {
			auth.WriteError(w, r, apperror.NewNotFoundError("avatar not found", err))
			return
		}

		png, err := h.service.GetAvatar(r.Context(), userID)
		if err != nil {
			auth.WriteError(w, r, err)
			return
		}

		w.Header().Set("Content-Type", "image/png")
		w.Header().Set("Content-Length", strconv.Itoa(len(png)))
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write(png)
	}
}
