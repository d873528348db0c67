package importer_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MrJamesThe3rd/spendy/internal/importer"
	"github.com/MrJamesThe3rd/spendy/internal/importer/cgd"
	"github.com/MrJamesThe3rd/spendy/internal/transaction"
)

func TestService_Import(t *testing.T) {
	type args struct {
		bank       importer.Bank
		category   string
		csvContent string
	}

	type testCase struct {
		name    string
		args    args
		wantLen int
		verify  func(t *testing.T, params []transaction.NewParams)
		wantErr error
	}

	tests := []testCase{
		{
			name: "Standard CGD Export",
			args: args{
				bank:     importer.BankCGD,
				category: "Other",
				csvContent: `Consultar saldos e movimentos à ordem - 31-01-2026;"=""0000"""
Nome cliente;JOHN DOE

Data mov.;Data-valor;Descrição;Montante;Saldo contabilístico após movimento
30-01-2026;30-01-2026;TEST_EXPENSE;-10,00;990,00
09-01-2026;09-01-2026;TEST_INCOME;50,00;1.040,00
`,
			},
			wantLen: 2,
			verify: func(t *testing.T, params []transaction.NewParams) {
				assert.Equal(t, "10", params[0].Amount.String())
				assert.Equal(t, transaction.TypeExpense, params[0].Type)
				assert.Equal(t, "50", params[1].Amount.String())
				assert.Equal(t, transaction.TypeIncome, params[1].Type)

				for _, p := range params {
					assert.Equal(t, "Other", p.Category)
					assert.NoError(t, p.Validate())
				}
			},
		},
		{
			name: "Bank Name Is Case Insensitive",
			args: args{
				bank:       "CGD",
				category:   "Food",
				csvContent: "Data mov.;Descrição;Montante\n30-01-2026;CAFE;-2,50\n",
			},
			wantLen: 1,
			verify: func(t *testing.T, params []transaction.NewParams) {
				assert.Equal(t, "Food", params[0].Category)
			},
		},
		{
			name: "Header Only",
			args: args{
				bank:       importer.BankCGD,
				category:   "Other",
				csvContent: `Data mov.;Data-valor;Descrição;Montante`,
			},
			wantLen: 0,
		},
		{
			name: "Unknown Bank",
			args: args{
				bank:       "bpi",
				category:   "Other",
				csvContent: "Data mov.;Descrição;Montante\n",
			},
			wantErr: importer.ErrUnknownBank,
		},
		{
			name: "Blank Category",
			args: args{
				bank:       importer.BankCGD,
				category:   "  ",
				csvContent: "Data mov.;Descrição;Montante\n",
			},
			wantErr: transaction.ErrMissingCategory,
		},
		{
			name: "Unrecognised Layout",
			args: args{
				bank:       importer.BankCGD,
				category:   "Other",
				csvContent: "Date;Amount\n2026-01-30;10\n",
			},
			wantErr: cgd.ErrNoProfile,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := importer.NewService()
			got, err := svc.Import(tt.args.bank, strings.NewReader(tt.args.csvContent), tt.args.category)

			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}

			require.NoError(t, err)
			assert.Len(t, got, tt.wantLen)

			if tt.verify != nil {
				tt.verify(t, got)
			}
		})
	}
}
