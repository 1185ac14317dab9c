package audit

// Meta metadatos de red del request que disparó la mutación; viajan a la
// entrada de auditoría tal cual los vio la capa HTTP.
type Meta struct {
	IP        string
	UserAgent string
}
