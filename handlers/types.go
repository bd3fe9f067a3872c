// SPDX-License-Identifier: GPL-3.0-only

package handlers

// swagger:model FieldError
type FieldError struct {
	// Name of the offending request field
	Field string `json:"field"`
	// Human-readable description of the problem
	Message string `json:"message"`
}

// swagger:model ErrorResponse
type ErrorResponse struct {
	// Generic error message
	Error string `json:"error"`
	// Field-level details, present for validation failures only
	Details []FieldError `json:"details,omitempty"`
}

// swagger:model GenericResponse
type GenericResponse struct {
	// Message indicating the result of the operation
	Message string `json:"message"`
}

// swagger:model SignupRequest
type SignupRequest struct {
	// User's email address
	// required: true
	Email string `json:"email" example:"user@example.com"`
	// User's display name
	// required: true
	Name string `json:"name" example:"Jane Doe"`
	// User's password
	// required: true
	Password string `json:"password" example:"MySecretPassword@123"`
}

// swagger:model UserInfo
type UserInfo struct {
	ID    string `json:"id" example:"7b1e1d3e-8f6a-4f0f-9f94-2f3d0c1a4b5c"`
	Email string `json:"email" example:"user@example.com"`
	Name  string `json:"name" example:"Jane Doe"`
}

// swagger:model SignupResponse
type SignupResponse struct {
	Message string   `json:"message"`
	User    UserInfo `json:"user"`
}

// swagger:model LoginRequest
type LoginRequest struct {
	Email      string `json:"email" example:"user@example.com"`
	Password   string `json:"password" example:"MySecretPassword@123"`
	RememberMe bool   `json:"rememberMe" example:"true"`
}

// swagger:model LoginResponse
type LoginResponse struct {
	Message string      `json:"message"`
	User    SessionUser `json:"user"`
}

// swagger:model SessionUser
type SessionUser struct {
	ID            string `json:"id"`
	EmailVerified bool   `json:"emailVerified"`
	RememberMe    bool   `json:"rememberMe"`
}

// swagger:model SessionResponse
type SessionResponse struct {
	User *SessionUser `json:"user"`
}

// swagger:model EmailRequest
type EmailRequest struct {
	Email string `json:"email" example:"user@example.com"`
}

// swagger:model VerifyEmailRequest
type VerifyEmailRequest struct {
	Token string `json:"token"`
}

// swagger:model ResetPasswordRequest
type ResetPasswordRequest struct {
	Token    string `json:"token"`
	Password string `json:"password"`
}

// swagger:model AccountRequest
type AccountRequest struct {
	Name     string `json:"name" example:"Everyday Checking"`
	Type     string `json:"type" example:"checking"`
	Balance  string `json:"balance" example:"1250.00"`
	Currency string `json:"currency" example:"USD"`
}

// swagger:model AccountDetails
type AccountDetails struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Type      string `json:"type"`
	Balance   string `json:"balance"`
	Currency  string `json:"currency"`
	CreatedAt string `json:"created_at"`
	UpdatedAt string `json:"updated_at"`
}

// swagger:model AccountListResponse
type AccountListResponse struct {
	Accounts []AccountDetails `json:"accounts"`
}

// swagger:model TransactionRequest
type TransactionRequest struct {
	AccountID        string   `json:"account_id"`
	Amount           string   `json:"amount" example:"-42.50"`
	Type             string   `json:"type" example:"expense"`
	CategoryID       *string  `json:"category_id"`
	MerchantName     *string  `json:"merchant_name"`
	Description      *string  `json:"description"`
	Date             string   `json:"date" example:"2025-08-01"`
	IsRecurring      *bool    `json:"is_recurring"`
	RecurringPattern *string  `json:"recurring_pattern"`
	Tags             []string `json:"tags"`
}

// swagger:model TransactionDetails
type TransactionDetails struct {
	ID               string   `json:"id"`
	AccountID        string   `json:"account_id"`
	Amount           string   `json:"amount"`
	Type             string   `json:"type"`
	CategoryID       *string  `json:"category_id"`
	MerchantName     *string  `json:"merchant_name"`
	Description      *string  `json:"description"`
	Date             string   `json:"date"`
	IsRecurring      bool     `json:"is_recurring"`
	RecurringPattern *string  `json:"recurring_pattern"`
	Tags             []string `json:"tags"`
	CreatedAt        string   `json:"created_at"`
}

// swagger:model TransactionListResponse
type TransactionListResponse struct {
	Transactions []TransactionDetails `json:"transactions"`
}

// swagger:model BudgetRequest
type BudgetRequest struct {
	CategoryID *string `json:"category_id"`
	Amount     string  `json:"amount" example:"600.00"`
	Period     string  `json:"period" example:"monthly"`
	StartDate  string  `json:"start_date" example:"2025-08-01"`
	EndDate    *string `json:"end_date"`
}

// swagger:model BudgetDetails
type BudgetDetails struct {
	ID         string  `json:"id"`
	CategoryID *string `json:"category_id"`
	Amount     string  `json:"amount"`
	Period     string  `json:"period"`
	StartDate  string  `json:"start_date"`
	EndDate    *string `json:"end_date"`
	CreatedAt  string  `json:"created_at"`
}

// swagger:model BudgetListResponse
type BudgetListResponse struct {
	Budgets []BudgetDetails `json:"budgets"`
}

// swagger:model CategoryDetails
type CategoryDetails struct {
	ID       string  `json:"id"`
	Name     string  `json:"name"`
	Type     string  `json:"type"`
	Icon     *string `json:"icon"`
	Color    *string `json:"color"`
	IsSystem bool    `json:"is_system"`
}

// swagger:model CategoryListResponse
type CategoryListResponse struct {
	Categories []CategoryDetails `json:"categories"`
}

// swagger:model InsightDetails
type InsightDetails struct {
	ID          string  `json:"id"`
	InsightType string  `json:"insight_type"`
	Title       string  `json:"title"`
	Description string  `json:"description"`
	Priority    *string `json:"priority"`
	Data        any     `json:"data"`
	IsRead      bool    `json:"is_read"`
	GeneratedAt string  `json:"generated_at"`
}

// swagger:model InsightListResponse
type InsightListResponse struct {
	Insights []InsightDetails `json:"insights"`
}
