package account

import (
	"errors"

	"github.com/BruksfildServices01/clinic-scheduler/internal/httperr"
	"github.com/BruksfildServices01/clinic-scheduler/internal/store"
)

var (
	errUserNotFound      = httperr.ErrNotFound("user_not_found", "Usuário não existe.")
	errPatientNotFound   = httperr.ErrNotFound("patient_not_found", "Paciente não existe.")
	errDoctorNotFound    = httperr.ErrNotFound("doctor_not_found", "Médico não existe.")
	errSpecialtyNotFound = httperr.ErrNotFound("specialty_not_found", "Especialidade não existe.")

	errInvalidCredentials = httperr.ErrAuthentication("invalid_credentials", "Usuário ou senha inválidos.")
)

// orNotFound troca store.ErrNotFound pelo erro de domínio informado.
func orNotFound(err, nf error) error {
	if errors.Is(err, store.ErrNotFound) {
		return nf
	}
	return err
}
