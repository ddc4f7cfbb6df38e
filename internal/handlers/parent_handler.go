package handlers

import (
	"bytes"
	"errors"
	"fmt"
	"html/template"
	"net/http"
	"time"

	"foodiefriends/internal/security"
	"foodiefriends/internal/service"
)

// parentCSRFIdentity keys the CSRF token for the grown-ups forms. The
// parent session is a single shared identity, so one fixed key suffices.
const parentCSRFIdentity = "grownups"

// ParentHandler serves the PIN-gated grown-ups area: PIN management,
// backup email settings, and backup export.
type ParentHandler struct {
	parents   *service.ParentService
	backup    *service.BackupService
	email     *service.EmailService
	tokens    *security.TokenIssuer
	csrf      *security.CSRFGenerator
	templates *template.Template
}

// NewParentHandler creates a new parent handler
func NewParentHandler(parents *service.ParentService, backup *service.BackupService, email *service.EmailService, tokens *security.TokenIssuer, csrf *security.CSRFGenerator, templates *template.Template) *ParentHandler {
	return &ParentHandler{
		parents:   parents,
		backup:    backup,
		email:     email,
		tokens:    tokens,
		csrf:      csrf,
		templates: templates,
	}
}

// checkCSRF validates the csrf_token form field on grown-ups POSTs.
// Returns false after writing the response when the token is bad.
func (h *ParentHandler) checkCSRF(w http.ResponseWriter, r *http.Request) bool {
	if !h.csrf.ValidateToken(parentCSRFIdentity, r.FormValue("csrf_token")) {
		http.Error(w, "Invalid CSRF token", http.StatusForbidden)
		return false
	}
	return true
}

// ShowPIN renders the PIN entry form
func (h *ParentHandler) ShowPIN(w http.ResponseWriter, r *http.Request) {
	h.renderPIN(w, "")
}

// VerifyPIN checks the entered PIN and opens the grown-ups area
func (h *ParentHandler) VerifyPIN(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		respondWithError(w, http.StatusBadRequest, ErrInvalidFormData, "", err)
		return
	}

	if err := h.parents.VerifyPIN(r.FormValue("pin")); err != nil {
		if errors.Is(err, service.ErrWrongPIN) {
			h.renderPIN(w, "That PIN is not right. Try again.")
			return
		}
		respondWithError(w, http.StatusInternalServerError, ErrInternalServerError, "Failed to verify PIN", err)
		return
	}

	token, err := h.tokens.IssueParentToken()
	if err != nil {
		respondWithError(w, http.StatusInternalServerError, ErrInternalServerError, "Failed to issue parent token", err)
		return
	}

	expires := time.Now().Add(h.tokens.ParentTTL())
	http.SetCookie(w, security.CreateSessionCookie(r, ParentCookieName, token, expires))
	http.Redirect(w, r, "/grownups", http.StatusSeeOther)
}

// Logout closes the grown-ups area
func (h *ParentHandler) Logout(w http.ResponseWriter, r *http.Request) {
	http.SetCookie(w, security.CreateDeleteCookie(r, ParentCookieName))
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

// Dashboard renders the grown-ups settings page
func (h *ParentHandler) Dashboard(w http.ResponseWriter, r *http.Request) {
	h.renderDashboard(w, "", "")
}

// ChangePIN replaces the parent PIN
func (h *ParentHandler) ChangePIN(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		respondWithError(w, http.StatusBadRequest, ErrInvalidFormData, "", err)
		return
	}

	if !h.checkCSRF(w, r) {
		return
	}

	err := h.parents.ChangePIN(r.FormValue("current_pin"), r.FormValue("new_pin"))
	switch {
	case errors.Is(err, service.ErrWrongPIN):
		h.renderDashboard(w, "The current PIN is not right.", "")
	case errors.Is(err, service.ErrInvalidPIN):
		h.renderDashboard(w, "The new PIN must be 4 to 8 digits.", "")
	case err != nil:
		respondWithError(w, http.StatusInternalServerError, ErrInternalServerError, "Failed to change PIN", err)
	default:
		h.renderDashboard(w, "", "PIN updated.")
	}
}

// SetBackupEmail stores the backup recipient address
func (h *ParentHandler) SetBackupEmail(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		respondWithError(w, http.StatusBadRequest, ErrInvalidFormData, "", err)
		return
	}

	if !h.checkCSRF(w, r) {
		return
	}

	if err := h.parents.SetBackupEmail(r.FormValue("email")); err != nil {
		respondWithError(w, http.StatusInternalServerError, ErrInternalServerError, "Failed to save backup email", err)
		return
	}
	h.renderDashboard(w, "", "Backup email saved.")
}

// DownloadBackup streams a JSON export of the database
func (h *ParentHandler) DownloadBackup(w http.ResponseWriter, r *http.Request) {
	filename := fmt.Sprintf("foodiefriends-backup-%s.json", time.Now().Format("2006-01-02"))
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))

	if err := h.backup.ExportTo(w); err != nil {
		// Headers are already out; all we can do is log
		respondWithError(w, http.StatusInternalServerError, ErrInternalServerError, "Failed to export backup", err)
	}
}

// EmailBackup sends a backup export to the configured address
func (h *ParentHandler) EmailBackup(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		respondWithError(w, http.StatusBadRequest, ErrInvalidFormData, "", err)
		return
	}
	if !h.checkCSRF(w, r) {
		return
	}

	toEmail, err := h.parents.BackupEmail()
	if err != nil {
		respondWithError(w, http.StatusInternalServerError, ErrInternalServerError, "Failed to read backup email", err)
		return
	}
	if toEmail == "" {
		h.renderDashboard(w, "Set a backup email address first.", "")
		return
	}
	if !h.email.IsEnabled() {
		h.renderDashboard(w, "Email sending is not configured on this server.", "")
		return
	}

	var buf bytes.Buffer
	if err := h.backup.ExportTo(&buf); err != nil {
		respondWithError(w, http.StatusInternalServerError, ErrInternalServerError, "Failed to export backup", err)
		return
	}

	if err := h.email.SendBackupEmail(r.Context(), toEmail, buf.Bytes()); err != nil {
		respondWithError(w, http.StatusInternalServerError, "Could not send the backup email", "Failed to send backup email", err)
		return
	}
	h.renderDashboard(w, "", "Backup emailed to "+toEmail+".")
}

func (h *ParentHandler) renderPIN(w http.ResponseWriter, errMsg string) {
	data := ParentPINViewData{
		Title: "Grown-Ups Only",
		Error: errMsg,
	}
	if err := h.templates.ExecuteTemplate(w, "pin.tmpl", data); err != nil {
		respondWithError(w, http.StatusInternalServerError, ErrInternalServerError, "Failed to render PIN page", err)
	}
}

func (h *ParentHandler) renderDashboard(w http.ResponseWriter, errMsg, success string) {
	email, err := h.parents.BackupEmail()
	if err != nil {
		respondWithError(w, http.StatusInternalServerError, ErrInternalServerError, "Failed to read backup email", err)
		return
	}

	csrfToken, err := h.csrf.GenerateToken(parentCSRFIdentity)
	if err != nil {
		respondWithError(w, http.StatusInternalServerError, ErrInternalServerError, "Failed to generate CSRF token", err)
		return
	}

	data := GrownupsViewData{
		Title:        "Grown-Ups",
		BackupEmail:  email,
		EmailEnabled: h.email.IsEnabled(),
		CSRFToken:    csrfToken,
		Error:        errMsg,
		Success:      success,
	}
	if err := h.templates.ExecuteTemplate(w, "grownups.tmpl", data); err != nil {
		respondWithError(w, http.StatusInternalServerError, ErrInternalServerError, "Failed to render grown-ups page", err)
	}
}
