package odoo

import (
	"context"
	"testing"
	"time"

	"github.com/mdzio/go-lib/testutil"
	"github.com/mdzio/go-odoo/xmlrpc"
	"golang.org/x/time/rate"
)

func newIntegrationSession(t *testing.T) *Session {
	s, err := NewSession(Config{
		URL:      testutil.Config(t, "ODOO_URL"),
		Database: testutil.Config(t, "ODOO_DB"),
		Username: testutil.Config(t, "ODOO_USERNAME"),
		Password: testutil.Config(t, "ODOO_PASSWORD"),
		Limiter:  rate.NewLimiter(rate.Every(100*time.Millisecond), 1),
	})
	if err != nil {
		t.Fatal(err)
	}
	return s
}

func TestIntegration_Version(t *testing.T) {
	s := newIntegrationSession(t)
	v, err := s.Version(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	q := xmlrpc.Q(v)
	version := q.Key("server_version").String()
	if q.Err() != nil {
		t.Fatal(q.Err())
	}
	t.Log("Server version:", version)
}

func TestIntegration_Partners(t *testing.T) {
	s := newIntegrationSession(t)
	ctx := context.Background()

	cnt, err := s.SearchCount(ctx, "res.partner", nil)
	if err != nil {
		t.Fatal(err)
	}
	q := xmlrpc.Q(cnt)
	n := q.Int()
	if q.Err() != nil {
		t.Fatal(q.Err())
	}

	v, err := s.SearchRead(ctx, "res.partner", Domain(), nil, 0, 5)
	if err != nil {
		t.Fatal(err)
	}
	var partners []struct {
		ID   int64  `xmlrpc:"id"`
		Name string `xmlrpc:"name"`
	}
	if err := DecodeRecords(v, &partners); err != nil {
		t.Fatal(err)
	}
	if len(partners) > 5 || (n > 0 && len(partners) == 0) {
		t.Errorf("unexpected number of partners: %d of %d", len(partners), n)
	}
	for _, p := range partners {
		if p.ID == 0 {
			t.Errorf("missing ID: %+v", p)
		}
	}
}
