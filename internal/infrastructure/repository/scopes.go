package repository

import (
	"strings"

	domainRepo "github.com/sangkips/rfp-api/internal/domain/repository"
	"github.com/sangkips/rfp-api/pkg/pagination"
	"gorm.io/gorm"
)

// Paginate returns a GORM scope applying page based offset and limit
func Paginate(p *pagination.PaginationParams) func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		if p == nil {
			p = pagination.DefaultPagination()
		}
		p.Validate()
		return db.Offset(p.Offset()).Limit(p.PerPage)
	}
}

// RfpFilters returns a GORM scope applying the list filters for RFPs.
// Text filters are case-insensitive on every supported dialect.
func RfpFilters(params *domainRepo.RfpFilterParams) func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		if params == nil {
			return db
		}
		if params.Status != nil {
			db = db.Where("status = ?", *params.Status)
		}
		if params.SalespersonID != nil {
			db = db.Where("salesperson_id = ?", *params.SalespersonID)
		}
		if params.CompanyName != "" {
			db = db.Where("LOWER(company_name) LIKE ? ESCAPE '\\'", likePattern(params.CompanyName))
		}
		if params.DepartmentType != "" {
			db = db.Where("LOWER(department_type) = ?", strings.ToLower(strings.TrimSpace(params.DepartmentType)))
		}
		if params.Search != "" {
			pattern := likePattern(params.Search)
			products := db.Session(&gorm.Session{NewDB: true}).
				Table("rfp_products").
				Select("rfp_request_id").
				Where("LOWER(product_spec) LIKE ? ESCAPE '\\'", pattern)
			db = db.Where("LOWER(rfp_id) LIKE ? ESCAPE '\\' OR LOWER(company_name) LIKE ? ESCAPE '\\' OR id IN (?)", pattern, pattern, products)
		}
		return db
	}
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// likePattern matches s as a literal substring. Callers pair it with ESCAPE '\'.
func likePattern(s string) string {
	return "%" + escapeLike(strings.ToLower(strings.TrimSpace(s))) + "%"
}

func escapeLike(s string) string {
	return likeEscaper.Replace(s)
}
