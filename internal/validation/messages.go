package validation

// Client-facing messages. They are part of the API contract.
const (
	MsgInvalidID           = "Id no válido"
	MsgNameRequired        = "El nombre del producto no puede estar vacío"
	MsgPriceNotNumeric     = "El valor del precio tiene que ser numérico"
	MsgPriceRequired       = "El precio del producto no puede estar vacío"
	MsgPriceInvalid        = "Precio no válido"
	MsgAvailabilityInvalid = "Valor para disponibilidad no válido"
	MsgMalformedBody       = "Cuerpo de la petición no válido"
)
