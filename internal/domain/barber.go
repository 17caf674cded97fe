package domain

// Barber парикмахер. В старых версиях записей хранился либо только его идентификатор,
// либо вложенный объект с именем; Name пустой, если известен только ID
type Barber struct {
	ID   string
	Name string
}

// DisplayName имя для показа, при отсутствии имени идентификатор
func (b *Barber) DisplayName() string {
	if b == nil {
		return ""
	}
	if b.Name != "" {
		return b.Name
	}
	return b.ID
}
