package store

import (
	"testing"
	"time"

	"freightquick/internal/fleet"
)

func TestSignupAndLoginFlow(t *testing.T) {
	s := newTestStore(t)

	trialEnds := time.Now().Add(14 * 24 * time.Hour)
	companyID, userID, err := s.CreateCompany(
		fleet.Company{CompanyName: "Acme Trucking", DOTNumber: "123456", Email: "ops@acme.test"},
		"Jordan Wells", "ops@acme.test", "hash", trialEnds)
	if err != nil {
		t.Fatalf("CreateCompany: %v", err)
	}
	if companyID == 0 || userID == 0 {
		t.Fatal("expected nonzero ids")
	}

	u, err := s.GetUserByEmail("ops@acme.test")
	if err != nil {
		t.Fatalf("GetUserByEmail: %v", err)
	}
	if u.Role != "manager" || u.CompanyName != "Acme Trucking" {
		t.Errorf("manager user wrong: %+v", u)
	}
	if !u.IsActive {
		t.Error("manager should be active")
	}

	// Duplicate signup on the same email fails cleanly.
	if _, _, err := s.CreateCompany(
		fleet.Company{CompanyName: "Other", Email: "ops@acme.test"},
		"X", "ops@acme.test", "hash", trialEnds); err != ErrEmailTaken {
		t.Errorf("duplicate signup err = %v, want ErrEmailTaken", err)
	}
}

func TestInviteUser(t *testing.T) {
	s := newTestStore(t)

	companyID, _, _ := s.CreateCompany(
		fleet.Company{CompanyName: "Acme", Email: "a@acme.test"},
		"Mgr", "a@acme.test", "hash", time.Now())

	id, err := s.InviteUser(companyID, "New Driver", "drv@acme.test", "tok-123")
	if err != nil {
		t.Fatalf("InviteUser: %v", err)
	}
	if id == 0 {
		t.Fatal("expected nonzero user id")
	}

	u, _ := s.GetUserByEmail("drv@acme.test")
	if u.IsActive {
		t.Error("invited user should be inactive until accepting")
	}
	if u.InviteToken != "tok-123" || u.Role != "driver" {
		t.Errorf("invited user wrong: %+v", u)
	}

	if _, err := s.InviteUser(companyID, "Again", "drv@acme.test", "tok-456"); err != ErrEmailTaken {
		t.Errorf("duplicate invite err = %v, want ErrEmailTaken", err)
	}
}

func TestSessions(t *testing.T) {
	s := newTestStore(t)

	if err := s.CreateSession("tok-abc", 7, 3); err != nil {
		t.Fatalf("CreateSession: %v", err)
	}
	userID, companyID, err := s.GetSession("tok-abc")
	if err != nil {
		t.Fatalf("GetSession: %v", err)
	}
	if userID != 7 || companyID != 3 {
		t.Errorf("session = (%d, %d), want (7, 3)", userID, companyID)
	}

	if _, _, err := s.GetSession("nope"); err != ErrNotFound {
		t.Errorf("missing session err = %v, want ErrNotFound", err)
	}
}

func TestPromoteSuperadmin(t *testing.T) {
	s := newTestStore(t)

	s.CreateCompany(fleet.Company{CompanyName: "Acme", Email: "a@acme.test"},
		"Mgr", "a@acme.test", "hash", time.Now())

	if err := s.PromoteSuperadmin("a@acme.test"); err != nil {
		t.Fatalf("PromoteSuperadmin: %v", err)
	}
	u, _ := s.GetUserByEmail("a@acme.test")
	if u.Role != "superadmin" {
		t.Errorf("role = %q, want superadmin", u.Role)
	}

	if err := s.PromoteSuperadmin("ghost@acme.test"); err != ErrNotFound {
		t.Errorf("missing user err = %v, want ErrNotFound", err)
	}
}

func TestListCompaniesWithCounts(t *testing.T) {
	s := newTestStore(t)

	id1, _, _ := s.CreateCompany(fleet.Company{CompanyName: "Acme", Email: "a@acme.test"},
		"Mgr A", "a@acme.test", "hash", time.Now())
	s.CreateCompany(fleet.Company{CompanyName: "Bravo", Email: "b@bravo.test"},
		"Mgr B", "b@bravo.test", "hash", time.Now())
	s.InviteUser(id1, "Drv", "d@acme.test", "tok")

	companies, err := s.ListCompanies()
	if err != nil {
		t.Fatalf("ListCompanies: %v", err)
	}
	if len(companies) != 2 {
		t.Fatalf("got %d companies, want 2", len(companies))
	}
	for _, c := range companies {
		if c.CompanyName == "Acme" {
			if c.TotalUsers != 2 || c.Managers != 1 || c.Drivers != 1 {
				t.Errorf("Acme counts wrong: %+v", c)
			}
		}
	}
}

func TestSetSubscribed(t *testing.T) {
	s := newTestStore(t)

	id, _, _ := s.CreateCompany(fleet.Company{CompanyName: "Acme", Email: "a@acme.test"},
		"Mgr", "a@acme.test", "hash", time.Now())

	if err := s.SetSubscribed(id, true); err != nil {
		t.Fatalf("SetSubscribed: %v", err)
	}
	c, _ := s.GetCompany(id)
	if !c.IsSubscribed {
		t.Error("company should be subscribed")
	}
}
