package catalog

// CourtListQuery filters GET /courts.
type CourtListQuery struct {
	Type string `form:"type" binding:"omitempty,oneof=indoor outdoor"`
}
