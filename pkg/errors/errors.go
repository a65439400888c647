// Package errors holds the error taxonomy shared by the policy engine and
// the HTTP layer. Handlers translate each sentinel into its status code:
// 401, 403, 404, 409, 400 respectively.
package errors

import "errors"

var (
	// ErrUnauthorized means no valid caller identity was presented.
	ErrUnauthorized = errors.New("não autenticado")

	// ErrForbidden means the caller is authenticated but not entitled.
	ErrForbidden = errors.New("acesso negado: permissões insuficientes")

	// ErrNotFound means the referenced entity is absent.
	ErrNotFound = errors.New("registro não encontrado")

	// ErrConflict means a uniqueness or state precondition was violated.
	ErrConflict = errors.New("operação conflita com o estado atual")

	// ErrInvalid means the request payload failed validation.
	ErrInvalid = errors.New("dados inválidos")

	// ErrOptimisticLock means the record was modified by a concurrent
	// operation between read and conditional write.
	ErrOptimisticLock = errors.New("registro modificado por outra operação, tente novamente")
)
