package services

import (
	"bytes"
	"context"
	"fmt"
	"testing"

	"flightschool/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDocsServiceSignoutSheet(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	b, err := f.bookings().CreateMember(ctx, f.memberActor(), f.memberBookingInput(f.dual.ID))
	require.NoError(t, err)

	svc := DocsService{Store: f.store, Now: frozen}
	pdf, filename, err := svc.SignoutSheet(ctx, f.memberActor(), b.ID)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(pdf, []byte("%PDF")))
	assert.Equal(t, fmt.Sprintf("SIGNOUT_%d_Sam_Reed.pdf", b.ID), filename)

	_, _, err = svc.SignoutSheet(ctx, domain.Actor{UserID: 777, Role: domain.RoleMember}, b.ID)
	assert.True(t, domain.IsForbidden(err))
	_, _, err = svc.SignoutSheet(ctx, f.staff(), 9999)
	assert.True(t, domain.IsNotFound(err))
}

func TestDocsServiceInvoicePDF(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	inv := newInvoice(t, f)

	svc := DocsService{Store: f.store, Now: frozen}
	pdf, filename, err := svc.InvoicePDF(ctx, f.staff(), inv.ID)
	require.NoError(t, err)
	assert.NotEmpty(t, pdf)
	assert.True(t, bytes.HasPrefix(pdf, []byte("%PDF")))
	assert.Equal(t, "INVOICE_"+inv.InvoiceNumber+".pdf", filename)
}
