package handlers

import (
	"log/slog"
	"net/http"

	portssvc "github.com/SscSPs/simplefi_backend/internal/core/ports/services"
	"github.com/SscSPs/simplefi_backend/internal/dto"
	"github.com/SscSPs/simplefi_backend/internal/middleware"
	"github.com/gin-gonic/gin"
)

// accountHandler handles HTTP requests related to accounts.
type accountHandler struct {
	accountService portssvc.AccountSvcFacade
	journalService portssvc.JournalCalculatorSvc
}

// newAccountHandler creates a new accountHandler.
func newAccountHandler(as portssvc.AccountSvcFacade, js portssvc.JournalCalculatorSvc) *accountHandler {
	return &accountHandler{
		accountService: as,
		journalService: js,
	}
}

// registerAccountRoutes registers routes related to accounts.
func registerAccountRoutes(rg *gin.RouterGroup, accountService portssvc.AccountSvcFacade, journalService portssvc.JournalCalculatorSvc) {
	h := newAccountHandler(accountService, journalService)

	accounts := rg.Group("/accounts")
	{
		accounts.POST("", h.createAccount)
		accounts.GET("", h.listAccounts)
		accounts.GET("/:id", h.getAccount)
		accounts.PUT("/:id", h.updateAccount)
		accounts.DELETE("/:id", h.deleteAccount)
		accounts.GET("/:id/balance", h.getAccountBalance)
		accounts.GET("/:id/ledger", h.getAccountLedger)
	}
}

// createAccount godoc
// @Summary Create a new account
// @Description Adds an account to the chart of accounts with a zero balance
// @Tags accounts
// @Accept  json
// @Produce  json
// @Param   account body dto.CreateAccountRequest true "Account details"
// @Success 201 {object} dto.AccountResponse
// @Failure 400 {object} dto.ErrorResponse "InvalidRequest, InvalidAccountType or NormalBalanceMismatch"
// @Failure 404 {object} dto.ErrorResponse "Parent account not found"
// @Failure 409 {object} dto.ErrorResponse "Duplicate code or name"
// @Failure 500 {object} dto.ErrorResponse "Failed to create account"
// @Security BearerAuth
// @Router /accounts [post]
func (h *accountHandler) createAccount(c *gin.Context) {
	var req dto.CreateAccountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	logger.Info("Received request to create account", slog.String("code", req.Code), slog.String("account_type", req.AccountType))

	account, err := h.accountService.CreateAccount(c.Request.Context(), req, middleware.ActorFromContext(c))
	if err != nil {
		respondError(c, err, "Failed to create account")
		return
	}

	logger.Info("Account created successfully", slog.Int64("account_id", account.AccountID))
	c.JSON(http.StatusCreated, dto.ToAccountResponse(account))
}

// getAccount godoc
// @Summary Get an account by ID
// @Tags accounts
// @Produce  json
// @Param   id path int true "Account ID"
// @Success 200 {object} dto.AccountResponse
// @Failure 404 {object} dto.ErrorResponse "Account not found"
// @Security BearerAuth
// @Router /accounts/{id} [get]
func (h *accountHandler) getAccount(c *gin.Context) {
	accountID, err := idParam(c, "id")
	if err != nil {
		respondError(c, err, "Invalid account ID")
		return
	}

	account, err := h.accountService.GetAccountByID(c.Request.Context(), accountID)
	if err != nil {
		respondError(c, err, "Failed to retrieve account")
		return
	}
	c.JSON(http.StatusOK, dto.ToAccountResponse(account))
}

// listAccounts godoc
// @Summary List accounts
// @Description Lists the chart of accounts ordered by code
// @Tags accounts
// @Produce  json
// @Param   limit query int false "Limit number of results" default(50)
// @Param   offset query int false "Offset for pagination" default(0)
// @Success 200 {object} dto.ListAccountsResponse
// @Failure 400 {object} dto.ErrorResponse "Invalid query parameters"
// @Security BearerAuth
// @Router /accounts [get]
func (h *accountHandler) listAccounts(c *gin.Context) {
	var params dto.PageParams
	if err := c.ShouldBindQuery(&params); err != nil {
		respondBindError(c, err)
		return
	}

	accounts, err := h.accountService.ListAccounts(c.Request.Context(), params.Limit, params.Offset)
	if err != nil {
		respondError(c, err, "Failed to list accounts")
		return
	}

	middleware.GetLoggerFromCtx(c.Request.Context()).Debug("Accounts listed successfully", slog.Int("count", len(accounts)))
	c.JSON(http.StatusOK, dto.ListAccountsResponse{Accounts: dto.ToListAccountResponse(accounts)})
}

// updateAccount godoc
// @Summary Update an account
// @Description Updates an account's name or description. Code and type are immutable.
// @Tags accounts
// @Accept  json
// @Produce  json
// @Param   id path int true "Account ID"
// @Param   account body dto.UpdateAccountRequest true "Fields to update"
// @Success 200 {object} dto.AccountResponse
// @Failure 400 {object} dto.ErrorResponse "Invalid input"
// @Failure 404 {object} dto.ErrorResponse "Account not found"
// @Failure 409 {object} dto.ErrorResponse "Duplicate name"
// @Security BearerAuth
// @Router /accounts/{id} [put]
func (h *accountHandler) updateAccount(c *gin.Context) {
	accountID, err := idParam(c, "id")
	if err != nil {
		respondError(c, err, "Invalid account ID")
		return
	}
	var req dto.UpdateAccountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	account, err := h.accountService.UpdateAccount(c.Request.Context(), accountID, req, middleware.ActorFromContext(c))
	if err != nil {
		respondError(c, err, "Failed to update account")
		return
	}

	middleware.GetLoggerFromCtx(c.Request.Context()).Info("Account updated successfully", slog.Int64("account_id", accountID))
	c.JSON(http.StatusOK, dto.ToAccountResponse(account))
}

// deleteAccount godoc
// @Summary Delete an account
// @Description Removes an account that no journal line, child account or reconciliation references
// @Tags accounts
// @Param   id path int true "Account ID"
// @Success 204 "No Content"
// @Failure 404 {object} dto.ErrorResponse "Account not found"
// @Failure 409 {object} dto.ErrorResponse "AccountInUse"
// @Security BearerAuth
// @Router /accounts/{id} [delete]
func (h *accountHandler) deleteAccount(c *gin.Context) {
	accountID, err := idParam(c, "id")
	if err != nil {
		respondError(c, err, "Invalid account ID")
		return
	}

	if err := h.accountService.DeleteAccount(c.Request.Context(), accountID); err != nil {
		respondError(c, err, "Failed to delete account")
		return
	}

	middleware.GetLoggerFromCtx(c.Request.Context()).Info("Account deleted successfully", slog.Int64("account_id", accountID))
	c.Status(http.StatusNoContent)
}

// getAccountBalance godoc
// @Summary Get account balance
// @Description Returns the stored balance, or the balance folded from entries dated on or before asOf
// @Tags accounts
// @Produce json
// @Param id path int true "Account ID"
// @Param asOf query string false "Cut-off date (YYYY-MM-DD)"
// @Success 200 {object} dto.AccountBalanceResponse
// @Failure 400 {object} dto.ErrorResponse "Invalid date"
// @Failure 404 {object} dto.ErrorResponse "UnknownAccount"
// @Security BearerAuth
// @Router /accounts/{id}/balance [get]
func (h *accountHandler) getAccountBalance(c *gin.Context) {
	accountID, err := idParam(c, "id")
	if err != nil {
		respondError(c, err, "Invalid account ID")
		return
	}
	asOf, err := asOfParam(c)
	if err != nil {
		respondError(c, err, "Invalid asOf date")
		return
	}

	account, err := h.accountService.GetAccountByID(c.Request.Context(), accountID)
	if err != nil {
		respondError(c, err, "Failed to retrieve account")
		return
	}
	balance, err := h.journalService.GetAccountBalance(c.Request.Context(), accountID, asOf)
	if err != nil {
		respondError(c, err, "Failed to calculate balance")
		return
	}

	res := dto.AccountBalanceResponse{
		AccountID:     accountID,
		NormalBalance: account.NormalBalance,
		Balance:       balance,
	}
	if asOf != nil {
		d := dto.NewDate(*asOf)
		res.AsOf = &d
	}
	c.JSON(http.StatusOK, res)
}

// getAccountLedger godoc
// @Summary Get account ledger
// @Description Lists an account's journal lines in posting order with running balances
// @Tags accounts
// @Produce json
// @Param id path int true "Account ID"
// @Param asOf query string false "Cut-off date (YYYY-MM-DD)"
// @Success 200 {object} dto.AccountLedgerResponse
// @Failure 404 {object} dto.ErrorResponse "UnknownAccount"
// @Security BearerAuth
// @Router /accounts/{id}/ledger [get]
func (h *accountHandler) getAccountLedger(c *gin.Context) {
	accountID, err := idParam(c, "id")
	if err != nil {
		respondError(c, err, "Invalid account ID")
		return
	}
	asOf, err := asOfParam(c)
	if err != nil {
		respondError(c, err, "Invalid asOf date")
		return
	}

	lines, balance, err := h.journalService.GetAccountLedger(c.Request.Context(), accountID, asOf)
	if err != nil {
		respondError(c, err, "Failed to load ledger")
		return
	}
	c.JSON(http.StatusOK, dto.ToAccountLedgerResponse(accountID, asOf, lines, balance))
}
