// Package apperrors defines the sentinel errors of the commission engine.
// Services return these (possibly wrapped); handlers map them to HTTP status
// codes without ever leaking internals to clients.
package apperrors

import "errors"

// ErrRegrasAusentes means the commission rules row is missing. Fatal to any
// commission calculation — nothing proceeds with a guessed default.
var ErrRegrasAusentes = errors.New("regras de comissão não encontradas")

// ErrDadosInvalidos covers invalid input on a new record: non-positive gross
// value, missing kind or payment method. Rejected before persistence, never
// silently coerced.
var ErrDadosInvalidos = errors.New("dados inválidos")

// ErrFechamentoDuplicado means a daily closure already exists for the
// (loja, data) key. The existing closure is authoritative.
var ErrFechamentoDuplicado = errors.New("fechamento já registrado para esta loja e data")

// ErrSaldoInsuficiente means a commission closure was attempted with a
// non-positive cycle balance.
var ErrSaldoInsuficiente = errors.New("não há saldo positivo de comissão para fechar")

// ErrSemPermissao means a non-admin attempted an admin-only mutation
// (deletion, retroactive entry, register closure).
var ErrSemPermissao = errors.New("sem permissão para esta operação")

// ErrNaoEncontrado is the generic missing-resource error.
var ErrNaoEncontrado = errors.New("registro não encontrado")

// ErrCredenciaisInvalidas is returned on any login failure. Deliberately
// vague: it never reveals whether the email exists.
var ErrCredenciaisInvalidas = errors.New("credenciais inválidas")
