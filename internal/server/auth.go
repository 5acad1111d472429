package server

import (
	"net/http"
	"net/mail"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"freightquick/internal/fleet"
	"freightquick/internal/store"
)

// superadminSecret gates the bootstrap promotion endpoint.
const superadminSecret = "FREIGHTQUICK-SUPER-2026"

type signupRequest struct {
	CompanyName string `json:"company_name"`
	DOTNumber   string `json:"dot_number"`
	Email       string `json:"email"`
	Password    string `json:"password"`
	FullName    string `json:"full_name"`
}

func (s *Server) handleSignup(w http.ResponseWriter, r *http.Request) {
	var req signupRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid signup payload")
		return
	}
	if req.CompanyName == "" || req.Email == "" || req.Password == "" || req.FullName == "" {
		respondError(w, http.StatusBadRequest, "company_name, email, password and full_name are required")
		return
	}
	if _, err := mail.ParseAddress(req.Email); err != nil {
		respondError(w, http.StatusBadRequest, "invalid email address")
		return
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		s.storeError(w, err, "hash password")
		return
	}

	trialEnds := s.now().Add(s.cfg.TrialDuration())
	companyID, uID, err := s.store.CreateCompany(
		fleet.Company{CompanyName: req.CompanyName, DOTNumber: req.DOTNumber, Email: req.Email},
		req.FullName, req.Email, string(hash), trialEnds)
	if err != nil {
		if err == store.ErrEmailTaken {
			respondError(w, http.StatusBadRequest, "Email already registered")
			return
		}
		s.storeError(w, err, "signup")
		return
	}

	respond(w, http.StatusCreated, map[string]any{
		"message":      "Account created",
		"user_id":      uID,
		"company_id":   companyID,
		"role":         "manager",
		"full_name":    req.FullName,
		"company_name": req.CompanyName,
	})
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid login payload")
		return
	}

	u, err := s.store.GetUserByEmail(req.Email)
	if err == store.ErrNotFound {
		respondError(w, http.StatusUnauthorized, "Invalid email or password")
		return
	}
	if err != nil {
		s.storeError(w, err, "login lookup")
		return
	}
	if !u.IsActive {
		respondError(w, http.StatusUnauthorized, "Account not activated")
		return
	}
	if bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(req.Password)) != nil {
		respondError(w, http.StatusUnauthorized, "Invalid email or password")
		return
	}

	token := uuid.NewString()
	if err := s.store.CreateSession(token, u.ID, u.CompanyID); err != nil {
		s.storeError(w, err, "create session")
		return
	}

	respond(w, http.StatusOK, map[string]any{
		"token":        token,
		"user_id":      u.ID,
		"company_id":   u.CompanyID,
		"full_name":    u.FullName,
		"email":        u.Email,
		"role":         u.Role,
		"company_name": u.CompanyName,
	})
}

type inviteRequest struct {
	Email     string `json:"email"`
	FullName  string `json:"full_name"`
	CompanyID int64  `json:"company_id"`
}

func (s *Server) handleInvite(w http.ResponseWriter, r *http.Request) {
	var req inviteRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid invite payload")
		return
	}
	cid := req.CompanyID
	if authed := companyID(r); authed != 0 {
		cid = authed
	}
	if req.Email == "" || req.FullName == "" || cid == 0 {
		respondError(w, http.StatusBadRequest, "email, full_name and company_id are required")
		return
	}

	token := uuid.NewString()
	if _, err := s.store.InviteUser(cid, req.FullName, req.Email, token); err != nil {
		if err == store.ErrEmailTaken {
			respondError(w, http.StatusBadRequest, "Email already exists")
			return
		}
		s.storeError(w, err, "invite")
		return
	}

	respond(w, http.StatusCreated, map[string]string{
		"message":      "Driver invited",
		"invite_token": token,
	})
}

type makeSuperadminRequest struct {
	Secret string `json:"secret"`
	Email  string `json:"email"`
}

func (s *Server) handleMakeSuperadmin(w http.ResponseWriter, r *http.Request) {
	var req makeSuperadminRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid payload")
		return
	}
	if req.Secret != superadminSecret {
		respondError(w, http.StatusForbidden, "Invalid secret")
		return
	}
	if err := s.store.PromoteSuperadmin(req.Email); err != nil {
		if err == store.ErrNotFound {
			respondError(w, http.StatusNotFound, "user not found")
			return
		}
		s.storeError(w, err, "promote superadmin")
		return
	}
	respond(w, http.StatusOK, map[string]string{"message": "Superadmin role granted"})
}

// handleListCompanies serves the superadmin console. It requires an
// authenticated superadmin session.
func (s *Server) handleListCompanies(w http.ResponseWriter, r *http.Request) {
	uid := userID(r)
	if uid == 0 {
		respondError(w, http.StatusUnauthorized, "authentication required")
		return
	}
	u, err := s.store.GetUserByID(uid)
	if err != nil {
		s.storeError(w, err, "get user")
		return
	}
	if u.Role != "superadmin" {
		respondError(w, http.StatusForbidden, "superadmin role required")
		return
	}

	companies, err := s.store.ListCompanies()
	if err != nil {
		s.storeError(w, err, "list companies")
		return
	}
	respondList(w, companies)
}
