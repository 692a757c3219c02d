package handlers

import (
	"errors"
	"net/http"

	"campaign_forum/internal/flash"
	"campaign_forum/internal/forms"
	"campaign_forum/internal/service"

	"github.com/gin-gonic/gin"
)

const (
	msgRegistered      = "Your account was created. Please log in."
	msgBadLogin        = "Invalid username or password."
	msgLoggedOut       = "You have been logged out."
	msgProfileUpdated  = "Your profile was updated."
	msgPasswordChanged = "Your password was changed."
)

func (h *Handler) home(c *gin.Context) {
	h.redirect(c, defaultLanding)
}

func (h *Handler) registerForm(c *gin.Context) {
	h.render(c, http.StatusOK, "register.html", gin.H{"title": "Register", "form": forms.Registration{}})
}

// register validates the form, then checks username and email against the store for the
// fields that passed. Availability notices are flashed either way.
func (h *Handler) register(c *gin.Context) {
	ctx := c.Request.Context()
	form := forms.RegistrationFrom(c.PostForm)
	errs := forms.Validate(form)

	username, email := form.Username, form.Email
	if errs.Has("username") {
		username = ""
	}
	if errs.Has("email") {
		email = ""
	}
	conflicts, notices, err := h.services.CheckRegistrationUniqueness(ctx, username, email)
	if err != nil {
		h.serverError(c, "register_uniqueness_failed", err)
		return
	}
	errs.Merge(conflicts)
	for _, n := range notices {
		h.addFlash(c, flash.Info(n))
	}
	if !errs.Empty() {
		h.renderRegister(c, form, errs)
		return
	}

	id, err := h.services.Register(ctx, form)
	if err != nil {
		var conflict *service.ConflictError
		if errors.As(err, &conflict) {
			h.renderRegister(c, form, conflict.Errors())
			return
		}
		h.serverError(c, "register_failed", err, "username", form.Username)
		return
	}
	if h.log != nil {
		h.log.Infow("user_registered", "user_id", id, "username", form.Username)
	}
	h.addFlash(c, flash.Success(msgRegistered))
	h.redirect(c, "/login")
}

func (h *Handler) renderRegister(c *gin.Context, form forms.Registration, errs forms.Errors) {
	// never echo passwords back
	form.Password, form.Password2 = "", ""
	h.render(c, http.StatusOK, "register.html", gin.H{"title": "Register", "form": form, "errors": errs})
}

func (h *Handler) loginForm(c *gin.Context) {
	if actorID(c) > 0 {
		h.redirect(c, safeNext(c.Query("next")))
		return
	}
	h.renderLogin(c, forms.Login{}, nil, c.Query("next"))
}

func (h *Handler) login(c *gin.Context) {
	form := forms.LoginFrom(c.PostForm)
	next := c.PostForm("next")
	if next == "" {
		next = c.Query("next")
	}
	if errs := forms.Validate(form); !errs.Empty() {
		h.renderLogin(c, form, errs, next)
		return
	}

	user, err := h.services.Authenticate(c.Request.Context(), form.Username, form.Password)
	if err != nil {
		if errors.Is(err, service.ErrInvalidCredentials) {
			if h.log != nil {
				h.log.Infow("login_failed", "username", form.Username)
			}
			h.addFlash(c, flash.Error(msgBadLogin))
			h.renderLogin(c, form, nil, next)
			return
		}
		h.serverError(c, "login_failed", err, "username", form.Username)
		return
	}

	token, expires, err := h.services.IssueToken(user.ID, form.RememberMe)
	if err != nil {
		h.serverError(c, "login_issue_token_failed", err, "user_id", user.ID)
		return
	}
	h.setSession(c, token, expires, form.RememberMe)
	h.addFlash(c, flash.Success("Welcome back, "+user.Username+"."))
	h.redirect(c, safeNext(next))
}

func (h *Handler) renderLogin(c *gin.Context, form forms.Login, errs forms.Errors, next string) {
	form.Password = ""
	if errs == nil {
		errs = forms.Errors{}
	}
	h.render(c, http.StatusOK, "login.html", gin.H{"title": "Log in", "form": form, "errors": errs, "next": next})
}

func (h *Handler) logout(c *gin.Context) {
	h.clearSession(c)
	h.addFlash(c, flash.Info(msgLoggedOut))
	h.redirect(c, defaultLanding)
}

func (h *Handler) myProfile(c *gin.Context) {
	user, err := h.services.GetUser(c.Request.Context(), actorID(c))
	if err != nil {
		if errors.Is(err, service.ErrUserNotFound) {
			// token for an account that no longer exists
			h.clearSession(c)
			h.notFound(c)
			return
		}
		h.serverError(c, "profile_get_failed", err)
		return
	}
	h.render(c, http.StatusOK, "profile.html", gin.H{"title": user.Username, "user": user})
}

func (h *Handler) profileForm(c *gin.Context) {
	user, err := h.services.GetUser(c.Request.Context(), actorID(c))
	if err != nil {
		if errors.Is(err, service.ErrUserNotFound) {
			h.notFound(c)
			return
		}
		h.serverError(c, "profile_get_failed", err)
		return
	}
	h.renderProfileForm(c, forms.ProfileFromModel(*user), nil)
}

func (h *Handler) updateProfile(c *gin.Context) {
	form := forms.ProfileFrom(c.PostForm)
	if errs := forms.Validate(form); !errs.Empty() {
		h.renderProfileForm(c, form, errs)
		return
	}
	if err := h.services.UpdateProfile(c.Request.Context(), actorID(c), form); err != nil {
		if errors.Is(err, service.ErrUserNotFound) {
			h.notFound(c)
			return
		}
		h.serverError(c, "profile_update_failed", err)
		return
	}
	h.addFlash(c, flash.Success(msgProfileUpdated))
	h.redirect(c, "/myprofile")
}

func (h *Handler) renderProfileForm(c *gin.Context, form forms.Profile, errs forms.Errors) {
	if errs == nil {
		errs = forms.Errors{}
	}
	h.render(c, http.StatusOK, "profileform.html", gin.H{
		"title":  "Edit Profile",
		"form":   form,
		"errors": errs,
		"roles":  forms.RoleChoices,
	})
}

func (h *Handler) passwordForm(c *gin.Context) {
	h.render(c, http.StatusOK, "password.html", gin.H{"title": "Change Password"})
}

func (h *Handler) changePassword(c *gin.Context) {
	form := forms.PasswordResetFrom(c.PostForm)
	if errs := forms.Validate(form); !errs.Empty() {
		h.render(c, http.StatusOK, "password.html", gin.H{"title": "Change Password", "errors": errs})
		return
	}
	if err := h.services.ChangePassword(c.Request.Context(), actorID(c), form.Password); err != nil {
		if errors.Is(err, service.ErrUserNotFound) {
			h.notFound(c)
			return
		}
		h.serverError(c, "password_change_failed", err)
		return
	}
	h.addFlash(c, flash.Success(msgPasswordChanged))
	h.redirect(c, "/myprofile")
}
