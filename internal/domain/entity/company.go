package entity

// Company empresa del catálogo. NIT es la clave de identidad y no cambia tras la creación.
type Company struct {
	NIT     string `json:"nit"`
	Name    string `json:"nombre"`
	Address string `json:"direccion"`
	Phone   string `json:"telefono"`
}

// Límites de campos de Company.
const (
	CompanyNITMax     = 15
	CompanyNameMax    = 50
	CompanyAddressMax = 50
	CompanyPhoneMax   = 15
)
