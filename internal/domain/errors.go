package domain

import "errors"

// Errores de dominio (sin dependencias externas).
// Los handlers HTTP los traducen a estado + código estable con errors.Is.
var (
	ErrNotFound            = errors.New("recurso no encontrado")
	ErrUserNotFound        = errors.New("usuario no encontrado")
	ErrBranchNotFound      = errors.New("sucursal no encontrada")
	ErrProductNotFound     = errors.New("producto no encontrado")
	ErrEmailAlreadyExists  = errors.New("el email ya está registrado")
	ErrInvalidInput        = errors.New("entrada inválida")
	ErrDuplicate           = errors.New("recurso duplicado")
	ErrUnauthorized        = errors.New("no autorizado")
	ErrInvalidCredentials  = errors.New("credenciales inválidas")
	ErrForbidden           = errors.New("acceso denegado")
	ErrBranchMismatch      = errors.New("solo puede operar sobre su sucursal asignada")
	ErrConflict            = errors.New("conflicto con el estado actual")
	ErrDocumentOutstanding = errors.New("ya existe un documento pendiente o aprobado")
	ErrEmptyCart           = errors.New("el carrito está vacío")
	ErrNoBranchAssigned    = errors.New("el empleado no tiene sucursal asignada")
	ErrUnsupportedFile     = errors.New("tipo de archivo no permitido")
	ErrFileTooLarge        = errors.New("el archivo supera el tamaño máximo")
)
