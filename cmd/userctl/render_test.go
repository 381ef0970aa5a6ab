package main

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/user-directory/engine/internal/models"
)

func sp(s string) *string { return &s }

func TestRenderEntriesShowsBothKinds(t *testing.T) {
	persisted := &models.User{ID: 7, FirstName: sp("Emily"), LastName: sp("Johnson"), Email: sp("emily@x.dev")}
	persisted.Company.Name = sp("Acme")
	local := &models.LocalUser{FirstName: "Ada", LastName: "Lovelace", Email: "ada@example.com"}

	out := renderEntries([]models.Entry{models.LocalEntry(local), models.PersistedEntry(persisted)})
	for _, want := range []string{"NAME", "Emily Johnson", "emily@x.dev", "Acme", "Ada Lovelace", "local", "7"} {
		require.True(t, strings.Contains(out, want), "missing %q in\n%s", want, out)
	}
}

func TestRenderUserShowsMaskedValues(t *testing.T) {
	u := &models.User{ID: 1, FirstName: sp("Emily")}
	u.Bank.CardNumber = sp("************1815")
	u.Bank.IBAN = sp("YPUX****BR3H")

	out := renderUser(u)
	require.Contains(t, out, "************1815")
	require.Contains(t, out, "YPUX****BR3H")
	require.Contains(t, out, "Emily")
	require.Contains(t, out, "-")
}

func TestRunRequiresCommand(t *testing.T) {
	require.Error(t, run(nil))
	require.Error(t, run([]string{"frobnicate"}))
	require.Error(t, run([]string{"get"}))
}
