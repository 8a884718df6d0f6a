package dispatch

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"github.com/khatabook/number-change-portal/internal/auditlog"
	"github.com/khatabook/number-change-portal/internal/db/memdb"
	"github.com/khatabook/number-change-portal/internal/gateway"
	"github.com/khatabook/number-change-portal/internal/metrics"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubSender struct {
	result gateway.Result
	got    gateway.Request
	calls  int
}

func (s *stubSender) Dispatch(_ context.Context, kind gateway.Kind, req gateway.Request) gateway.Result {
	s.calls++
	s.got = req
	r := s.result
	r.Kind = kind
	return r
}

type failingAudit struct{}

func (failingAudit) Append(context.Context, auditlog.NewEntry) (*auditlog.Entry, error) {
	return nil, errors.New("store unavailable")
}

var actor = Actor{ID: "AG001", Name: "Asha Rao"}

func TestSendAppendsOneEntryOnSuccess(t *testing.T) {
	audit := auditlog.NewService(memdb.New())
	sender := &stubSender{result: gateway.Result{Outcome: gateway.OutcomeDelivered, Success: true, HTTPStatus: http.StatusOK}}
	svc := NewService(sender, audit, metrics.New("test"))

	res, entry := svc.Send(context.Background(), actor, gateway.KindSMSOTP, Input{
		CustomerID: "CUST-9",
		OldPhone:   "9876543210",
		OTP:        "4821",
	})

	assert.True(t, res.Success)
	require.NotNil(t, entry)
	assert.Equal(t, "9876543210", sender.got.Phone)

	list, err := audit.List(context.Background(), auditlog.Filter{})
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "sms", list[0].Channel)
	assert.Equal(t, "OTP", list[0].MessageType)
	assert.Equal(t, "success", list[0].Status)
	assert.Equal(t, "4821", list[0].OTP)
	assert.Equal(t, "AG001", list[0].AgentID)
	assert.Equal(t, "Asha Rao", list[0].AgentName)
	assert.Equal(t, "N/A", list[0].NewPhone)
	assert.Equal(t, "", list[0].Language)
}

func TestSendRecordsFailures(t *testing.T) {
	audit := auditlog.NewService(memdb.New())
	sender := &stubSender{result: gateway.Result{Outcome: gateway.OutcomeTransport, HTTPStatus: http.StatusInternalServerError}}
	svc := NewService(sender, audit, nil)

	res, entry := svc.Send(context.Background(), actor, gateway.KindPushOTP, Input{CustomerID: "CUST-9", OTP: "4821"})

	assert.False(t, res.Success)
	require.NotNil(t, entry)
	assert.Equal(t, "failed", entry.Status)
	assert.Equal(t, "push", entry.Channel)
}

func TestSendFormUsesNewPhoneAndLanguage(t *testing.T) {
	audit := auditlog.NewService(memdb.New())
	sender := &stubSender{result: gateway.Result{Outcome: gateway.OutcomeDelivered, Success: true, Language: "hindi"}}
	svc := NewService(sender, audit, nil)

	_, entry := svc.Send(context.Background(), Actor{ID: "ADMIN", Name: "Administrator"}, gateway.KindWhatsAppForm, Input{
		OldPhone: "9000000000",
		NewPhone: "9876543210",
		Language: "hindi",
	})

	assert.Equal(t, "9876543210", sender.got.Phone)
	require.NotNil(t, entry)
	assert.Equal(t, "whatsapp", entry.Channel)
	assert.Equal(t, "Form", entry.MessageType)
	assert.Equal(t, "hindi", entry.Language)
	assert.Equal(t, "N/A", entry.OTP)
	assert.Equal(t, "ADMIN", entry.AgentID)
}

func TestSendSkipsAuditForRejectedInput(t *testing.T) {
	audit := auditlog.NewService(memdb.New())
	sender := &stubSender{result: gateway.Result{Outcome: gateway.OutcomeInvalidInput, HTTPStatus: http.StatusBadRequest}}
	svc := NewService(sender, audit, nil)

	_, entry := svc.Send(context.Background(), actor, gateway.KindSMSOTP, Input{OldPhone: "123", OTP: "1"})

	assert.Nil(t, entry)
	list, err := audit.List(context.Background(), auditlog.Filter{})
	require.NoError(t, err)
	assert.Empty(t, list)
}

func TestSendSurvivesAuditFailure(t *testing.T) {
	sender := &stubSender{result: gateway.Result{Outcome: gateway.OutcomeDelivered, Success: true}}
	svc := NewService(sender, failingAudit{}, metrics.New("test"))

	res, entry := svc.Send(context.Background(), actor, gateway.KindSMSOTP, Input{OldPhone: "9876543210", OTP: "1"})

	assert.True(t, res.Success)
	assert.Nil(t, entry)
	assert.Equal(t, 1, sender.calls)
}
