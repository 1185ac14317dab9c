package validate

import (
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
)

// v instancia única del validador; los structs de dto llevan tags `validate:"..."`.
var v = validator.New(validator.WithRequiredStructEnabled())

// Struct valida un struct según sus tags. Devuelve un error legible con los
// campos inválidos, apto para exponer en la respuesta HTTP.
func Struct(s any) error {
	err := v.Struct(s)
	if err == nil {
		return nil
	}
	verrs, ok := err.(validator.ValidationErrors)
	if !ok {
		return err
	}
	fields := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		fields = append(fields, fmt.Sprintf("%s (%s)", fe.Field(), fe.Tag()))
	}
	return fmt.Errorf("campos inválidos: %s", strings.Join(fields, ", "))
}
