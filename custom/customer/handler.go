package customer

import (
	"fmt"
	"time"

	"crm_system/constants"
	"crm_system/custom/apperr"
	"crm_system/custom/util"
	"crm_system/custom/validate"
	"crm_system/model"

	"github.com/romana/rlog"
	"gorm.io/gorm"
)

type HandlerContext struct {
	db *gorm.DB
}

type CreateCustomerInput struct {
	Name  string
	Email string
	Phone *string
}

type CreateCustomerResult struct {
	Customer *model.Customer `json:"customer"`
	Message  string          `json:"message"`
}

func (ctx *HandlerContext) InitialHandlerContext(db *gorm.DB) {
	ctx.db = db
}

// CreateCustomer Create a new customer after checking phone format and
// email uniqueness against already persisted customers.
func (ctx *HandlerContext) CreateCustomer(input CreateCustomerInput) (*CreateCustomerResult, error) {
	// Validate payload
	if input.Name == "" {
		return nil, apperr.Validation(constants.NAME_REQUIRED)
	}
	if input.Email == "" {
		return nil, apperr.Validation(constants.EMAIL_REQUIRED)
	}
	if input.Phone != nil && !validate.Phone(*input.Phone) {
		return nil, apperr.Validation("%s: %s", constants.INVALID_PHONE_FORMAT, *input.Phone)
	}

	newCustomer := model.Customer{
		Name:  input.Name,
		Email: input.Email,
		Phone: input.Phone,
	}
	errDb := ctx.db.Transaction(func(tx *gorm.DB) error {
		var existing int64
		if errTx := tx.Model(&model.Customer{}).Where("email = ?", input.Email).Count(&existing).Error; errTx != nil {
			return errTx
		}
		if existing > 0 {
			return apperr.Conflict(constants.EMAIL_ALREADY_EXISTS)
		}
		return tx.Create(&newCustomer).Error
	})
	if errDb != nil {
		rlog.Error("Create customer fail:", errDb.Error())
		return nil, errDb
	}

	rlog.Infof("Customer %d (%s) was created", newCustomer.ID, newCustomer.Email)
	return &CreateCustomerResult{
		Customer: &newCustomer,
		Message:  "Customer created successfully",
	}, nil
}

type CustomerFilter struct {
	Name         *string
	Email        *string
	CreatedAtGte *time.Time
	CreatedAtLte *time.Time
	OrderBy      *string
	First        *int
}

var sortableCustomerFields = map[string]string{
	"id":        "id",
	"name":      "name",
	"email":     "email",
	"createdAt": "created_at",
}

// ListCustomers Filtered customer listing, predicates are pushed down to
// the store.
func (ctx *HandlerContext) ListCustomers(filter CustomerFilter) ([]model.Customer, error) {
	query := ctx.db.Model(&model.Customer{})
	if filter.Name != nil {
		query = query.Where("name ILIKE ?", "%"+*filter.Name+"%")
	}
	if filter.Email != nil {
		query = query.Where("email ILIKE ?", "%"+*filter.Email+"%")
	}
	if filter.CreatedAtGte != nil {
		query = query.Where("created_at >= ?", *filter.CreatedAtGte)
	}
	if filter.CreatedAtLte != nil {
		query = query.Where("created_at <= ?", *filter.CreatedAtLte)
	}
	if filter.OrderBy != nil {
		clause, err := util.OrderClause(*filter.OrderBy, sortableCustomerFields)
		if err != nil {
			return nil, err
		}
		query = query.Order(clause)
	}
	if filter.First != nil && *filter.First > 0 {
		query = query.Limit(*filter.First)
	}

	customers := make([]model.Customer, 0)
	if err := query.Find(&customers).Error; err != nil {
		rlog.Error("List customers fail:", err.Error())
		return nil, err
	}
	return customers, nil
}

// BulkRecord A raw bulk-create row before parsing, every field may be
// absent.
type BulkRecord struct {
	Name  *string `json:"name"`
	Email *string `json:"email"`
	Phone *string `json:"phone"`
}

type BulkCreateResult struct {
	Customers []model.Customer `json:"customers"`
	Errors    []string         `json:"errors"`
}

func (rec BulkRecord) parse() (CreateCustomerInput, error) {
	if rec.Name == nil || *rec.Name == "" {
		return CreateCustomerInput{}, apperr.Validation("Missing required field name")
	}
	if rec.Email == nil || *rec.Email == "" {
		return CreateCustomerInput{}, apperr.Validation("Missing required field email")
	}
	return CreateCustomerInput{Name: *rec.Name, Email: *rec.Email, Phone: rec.Phone}, nil
}

// BulkCreateCustomers Create customers row by row with continue-on-error
// semantics: a failing row is collected as an error string tagged with its
// 1-based position and never aborts the batch. Emails already inserted by
// the same batch are rejected like persisted ones.
func (ctx *HandlerContext) BulkCreateCustomers(records []BulkRecord) *BulkCreateResult {
	created := make([]model.Customer, 0)
	rowErrors := make([]string, 0)
	seenEmails := make(map[string]bool)

	for i, record := range records {
		newCustomer, errRow := ctx.createBulkRow(record, seenEmails)
		if errRow != nil {
			rowErrors = append(rowErrors, fmt.Sprintf("Row %d: %s", i+1, errRow.Error()))
			continue
		}
		seenEmails[newCustomer.Email] = true
		created = append(created, *newCustomer)
	}

	if len(rowErrors) > 0 {
		rlog.Infof("Bulk create finished with %d created, %d failed", len(created), len(rowErrors))
	}
	return &BulkCreateResult{Customers: created, Errors: rowErrors}
}

func (ctx *HandlerContext) createBulkRow(record BulkRecord, seenEmails map[string]bool) (*model.Customer, error) {
	input, errParse := record.parse()
	if errParse != nil {
		return nil, errParse
	}
	if seenEmails[input.Email] {
		return nil, apperr.Conflict(constants.EMAIL_ALREADY_EXISTS)
	}
	result, errCreate := ctx.CreateCustomer(input)
	if errCreate != nil {
		return nil, errCreate
	}
	return result.Customer, nil
}
