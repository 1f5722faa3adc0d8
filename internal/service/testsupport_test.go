package service

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/adrianopessanha/blacksalon/internal/dto"
	"github.com/adrianopessanha/blacksalon/internal/model"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Fixed clock for every test: a Sunday afternoon mid-month.
var agoraTeste = time.Date(2026, 3, 15, 14, 30, 0, 0, time.UTC)

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func regrasTeste() *model.RegrasComissao {
	return &model.RegrasComissao{
		ID:                uuid.New(),
		ServicoPercentual: dec("0.50"),
		ProdutoPorItem:    dec("5.00"),
		TaxaDinheiro:      decimal.Zero,
		TaxaPix:           decimal.Zero,
		TaxaCredito:       dec("0.05"),
		TaxaDebito:        dec("0.02"),
		VigenteDesde:      time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC),
	}
}

func regrasProviderTeste() *RegrasProvider {
	p := NewRegrasProvider(&fakeRegrasRepo{vigente: regrasTeste()})
	if err := p.Carregar(context.Background()); err != nil {
		panic(err)
	}
	return p
}

// ─── fakes ───────────────────────────────────────────────────────────────────

type fakeRegrasRepo struct {
	vigente *model.RegrasComissao
}

func (f *fakeRegrasRepo) FindVigente(_ context.Context) (*model.RegrasComissao, error) {
	if f.vigente == nil {
		return nil, gorm.ErrRecordNotFound
	}
	return f.vigente, nil
}

func (f *fakeRegrasRepo) Create(_ context.Context, r *model.RegrasComissao) error {
	f.vigente = r
	return nil
}

type fakeLancamentoRepo struct {
	mu   sync.Mutex
	rows []model.Lancamento
}

func (f *fakeLancamentoRepo) Create(_ context.Context, l *model.Lancamento) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if l.ID == uuid.Nil {
		l.ID = uuid.New()
	}
	l.CreatedAt = time.Now()
	f.rows = append(f.rows, *l)
	return nil
}

func (f *fakeLancamentoRepo) FindByID(_ context.Context, id uuid.UUID) (*model.Lancamento, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for i := range f.rows {
		if f.rows[i].ID == id {
			l := f.rows[i]
			return &l, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeLancamentoRepo) Delete(_ context.Context, id uuid.UUID) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for i := range f.rows {
		if f.rows[i].ID == id {
			f.rows = append(f.rows[:i], f.rows[i+1:]...)
			return nil
		}
	}
	return gorm.ErrRecordNotFound
}

func (f *fakeLancamentoRepo) ListRecentesPorBarbeiro(_ context.Context, barbeiroID uuid.UUID, limit int) ([]model.Lancamento, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []model.Lancamento
	for i := range f.rows {
		if f.rows[i].BarbeiroID == barbeiroID {
			out = append(out, f.rows[i])
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		if !out[i].Data.Equal(out[j].Data) {
			return out[i].Data.After(out[j].Data)
		}
		return out[i].ID.String() > out[j].ID.String()
	})
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (f *fakeLancamentoRepo) ListPorLojaDia(_ context.Context, lojaID string, inicio, fim time.Time) ([]model.Lancamento, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []model.Lancamento
	for i := range f.rows {
		l := f.rows[i]
		if l.LojaID == lojaID && !l.Data.Before(inicio) && l.Data.Before(fim) {
			out = append(out, l)
		}
	}
	return out, nil
}

func (f *fakeLancamentoRepo) ListPorPeriodo(_ context.Context, inicio, fim time.Time, lojaID string, barbeiroID *uuid.UUID) ([]model.Lancamento, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []model.Lancamento
	for i := range f.rows {
		l := f.rows[i]
		if l.Data.Before(inicio) || !l.Data.Before(fim) {
			continue
		}
		if lojaID != "" && l.LojaID != lojaID {
			continue
		}
		if barbeiroID != nil && l.BarbeiroID != *barbeiroID {
			continue
		}
		out = append(out, l)
	}
	return out, nil
}

func (f *fakeLancamentoRepo) List(_ context.Context, filter dto.LancamentoFilter, inicio, fim time.Time) ([]model.Lancamento, int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []model.Lancamento
	for i := range f.rows {
		l := f.rows[i]
		if l.Data.Before(inicio) || !l.Data.Before(fim) {
			continue
		}
		if filter.LojaID != "" && l.LojaID != filter.LojaID {
			continue
		}
		if filter.BarbeiroID != "" && l.BarbeiroID.String() != filter.BarbeiroID {
			continue
		}
		out = append(out, l)
	}
	total := int64(len(out))
	offset := (filter.Page - 1) * filter.Limit
	if offset >= len(out) {
		return nil, total, nil
	}
	end := offset + filter.Limit
	if end > len(out) {
		end = len(out)
	}
	return out[offset:end], total, nil
}

type fakeBarbeiroRepo struct {
	mu   sync.Mutex
	rows map[uuid.UUID]*model.Barbeiro
}

func newFakeBarbeiroRepo(barbeiros ...*model.Barbeiro) *fakeBarbeiroRepo {
	f := &fakeBarbeiroRepo{rows: map[uuid.UUID]*model.Barbeiro{}}
	for _, b := range barbeiros {
		f.rows[b.ID] = b
	}
	return f
}

func (f *fakeBarbeiroRepo) Create(_ context.Context, b *model.Barbeiro) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, existente := range f.rows {
		if existente.Email == b.Email {
			return gorm.ErrDuplicatedKey
		}
	}
	if b.ID == uuid.Nil {
		b.ID = uuid.New()
	}
	copia := *b
	f.rows[b.ID] = &copia
	return nil
}

func (f *fakeBarbeiroRepo) FindByID(_ context.Context, id uuid.UUID) (*model.Barbeiro, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if b, ok := f.rows[id]; ok {
		copia := *b
		return &copia, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeBarbeiroRepo) FindByEmail(_ context.Context, email string) (*model.Barbeiro, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, b := range f.rows {
		if b.Email == email {
			copia := *b
			return &copia, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeBarbeiroRepo) List(_ context.Context, incluirInativos bool) ([]model.Barbeiro, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []model.Barbeiro
	for _, b := range f.rows {
		if !incluirInativos && !b.Ativo {
			continue
		}
		out = append(out, *b)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Nome < out[j].Nome })
	return out, nil
}

func (f *fakeBarbeiroRepo) Update(_ context.Context, b *model.Barbeiro) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	copia := *b
	f.rows[b.ID] = &copia
	return nil
}

func (f *fakeBarbeiroRepo) SetAtivo(_ context.Context, id uuid.UUID, ativo bool) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	b, ok := f.rows[id]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	b.Ativo = ativo
	return nil
}

type fakeFechamentoRepo struct {
	mu   sync.Mutex
	rows map[string]*model.FechamentoCaixa
}

func newFakeFechamentoRepo() *fakeFechamentoRepo {
	return &fakeFechamentoRepo{rows: map[string]*model.FechamentoCaixa{}}
}

func chaveFechamento(lojaID, data string) string { return lojaID + "|" + data }

func (f *fakeFechamentoRepo) Create(_ context.Context, fc *model.FechamentoCaixa) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	k := chaveFechamento(fc.LojaID, fc.DataReferencia)
	if _, ok := f.rows[k]; ok {
		return gorm.ErrDuplicatedKey
	}
	if fc.ID == uuid.Nil {
		fc.ID = uuid.New()
	}
	fc.CreatedAt = time.Now()
	copia := *fc
	f.rows[k] = &copia
	return nil
}

func (f *fakeFechamentoRepo) FindByLojaData(_ context.Context, lojaID, data string) (*model.FechamentoCaixa, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if fc, ok := f.rows[chaveFechamento(lojaID, data)]; ok {
		copia := *fc
		return &copia, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeFechamentoRepo) ListPorLoja(_ context.Context, lojaID string, limit int) ([]model.FechamentoCaixa, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []model.FechamentoCaixa
	for _, fc := range f.rows {
		if fc.LojaID == lojaID {
			out = append(out, *fc)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].DataReferencia > out[j].DataReferencia })
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

type fakeDespesaRepo struct {
	mu   sync.Mutex
	rows []model.Despesa
}

func (f *fakeDespesaRepo) Create(_ context.Context, d *model.Despesa) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if d.ID == uuid.Nil {
		d.ID = uuid.New()
	}
	f.rows = append(f.rows, *d)
	return nil
}

func (f *fakeDespesaRepo) FindByID(_ context.Context, id uuid.UUID) (*model.Despesa, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for i := range f.rows {
		if f.rows[i].ID == id {
			d := f.rows[i]
			return &d, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeDespesaRepo) Delete(_ context.Context, id uuid.UUID) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for i := range f.rows {
		if f.rows[i].ID == id {
			f.rows = append(f.rows[:i], f.rows[i+1:]...)
			return nil
		}
	}
	return gorm.ErrRecordNotFound
}

func (f *fakeDespesaRepo) UpdateStatus(_ context.Context, id uuid.UUID, status string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for i := range f.rows {
		if f.rows[i].ID == id {
			f.rows[i].Status = status
			return nil
		}
	}
	return gorm.ErrRecordNotFound
}

func (f *fakeDespesaRepo) ListPorPeriodo(_ context.Context, inicio, fim, lojaID string) ([]model.Despesa, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []model.Despesa
	for i := range f.rows {
		d := f.rows[i]
		if d.Data < inicio || d.Data > fim {
			continue
		}
		if lojaID != "" && d.LojaID != lojaID {
			continue
		}
		out = append(out, d)
	}
	return out, nil
}

// fakeDespachante records enqueued jobs so tests can assert the async wiring
// without Redis.
type fakeDespachante struct {
	mu          sync.Mutex
	resumos     []string
	fechamentos []string
}

func (f *fakeDespachante) EnqueueResumo(_ context.Context, barbeiroID string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.resumos = append(f.resumos, barbeiroID)
	return nil
}

func (f *fakeDespachante) EnqueueFechamentoEmail(_ context.Context, lojaID, dataReferencia string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.fechamentos = append(f.fechamentos, lojaID+"|"+dataReferencia)
	return nil
}

// ─── fixtures ────────────────────────────────────────────────────────────────

func barbeiroTeste(nome, loja string, admin bool) *model.Barbeiro {
	return &model.Barbeiro{
		ID:     uuid.New(),
		Nome:   nome,
		Email:  nome + "@blacksalon.com.br",
		LojaID: loja,
		Admin:  admin,
		Ativo:  true,
	}
}

func atorDe(b *model.Barbeiro) Ator {
	return Ator{ID: b.ID, Nome: b.Nome, LojaID: b.LojaID, Admin: b.Admin}
}

func lancTeste(b *model.Barbeiro, data time.Time, tipo, forma, valor, comissao string) model.Lancamento {
	return model.Lancamento{
		ID:               uuid.New(),
		Data:             data,
		BarbeiroID:       b.ID,
		BarbeiroNome:     b.Nome,
		LojaID:           b.LojaID,
		ValorBruto:       dec(valor),
		FormaPagamento:   forma,
		Tipo:             tipo,
		ComissaoBarbeiro: dec(comissao),
	}
}
