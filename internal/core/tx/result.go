package tx

import (
	"errors"
	"fmt"
)

// Result represents a transaction status code
type Result int

// Status codes used by the transfer pipeline, named as in the network's
// response code enumeration
const (
	// The transaction passed precheck
	StatusOK                                                        Result = 0
	StatusINVALID_TRANSACTION                                       Result = 1
	// The requested feature is disabled
	StatusNOT_SUPPORTED                                             Result = 13
	StatusINVALID_ACCOUNT_ID                                        Result = 15
	StatusSUCCESS                                                   Result = 22
	// An internal fault prevented the transaction from being handled
	StatusFAIL_INVALID                                              Result = 23
	StatusINSUFFICIENT_ACCOUNT_BALANCE                              Result = 28
	// Amounts are zero where they must not be, or do not net to zero
	StatusINVALID_ACCOUNT_AMOUNTS                                   Result = 48
	StatusACCOUNT_DELETED                                           Result = 72
	StatusACCOUNT_REPEATED_IN_ACCOUNT_AMOUNTS                       Result = 74
	StatusINVALID_TRANSACTION_BODY                                  Result = 84
	StatusINVALID_PAYER_ACCOUNT_ID                                  Result = 86
	StatusTRANSFER_LIST_SIZE_LIMIT_EXCEEDED                         Result = 104
	StatusACCOUNT_FROZEN_FOR_TOKEN                                  Result = 165
	StatusINVALID_TOKEN_ID                                          Result = 167
	StatusACCOUNT_KYC_NOT_GRANTED_FOR_TOKEN                         Result = 176
	StatusINSUFFICIENT_TOKEN_BALANCE                                Result = 178
	StatusTOKEN_WAS_DELETED                                         Result = 179
	StatusTOKEN_NOT_ASSOCIATED_TO_ACCOUNT                           Result = 184
	StatusTRANSFERS_NOT_ZERO_SUM_FOR_TOKEN                          Result = 186
	StatusTOKEN_TRANSFER_LIST_SIZE_LIMIT_EXCEEDED                   Result = 187
	StatusEMPTY_TOKEN_TRANSFER_BODY                                 Result = 188
	StatusEMPTY_TOKEN_TRANSFER_ACCOUNT_AMOUNTS                      Result = 189
	StatusTOKEN_ID_REPEATED_IN_TOKEN_LIST                           Result = 198
	StatusTOKENS_PER_ACCOUNT_LIMIT_EXCEEDED                         Result = 199
	StatusINVALID_NFT_ID                                            Result = 226
	StatusSENDER_DOES_NOT_OWN_NFT_SERIAL_NO                         Result = 237
	StatusBATCH_SIZE_LIMIT_EXCEEDED                                 Result = 238
	StatusCUSTOM_FEE_OUTSIDE_NUMERIC_RANGE                          Result = 242
	StatusCUSTOM_FEE_CHARGING_EXCEEDED_MAX_RECURSION_DEPTH          Result = 248
	StatusTOKEN_NOT_ASSOCIATED_TO_FEE_COLLECTOR                     Result = 250
	StatusINSUFFICIENT_SENDER_ACCOUNT_BALANCE_FOR_CUSTOM_FEE        Result = 255
	StatusACCOUNT_AMOUNT_TRANSFERS_ONLY_ALLOWED_FOR_FUNGIBLE_COMMON Result = 256
	StatusNFT_TRANSFERS_ONLY_ALLOWED_FOR_NON_FUNGIBLE_UNIQUE        Result = 257
	StatusNO_REMAINING_AUTOMATIC_ASSOCIATIONS                       Result = 262
	StatusCUSTOM_FEE_CHARGING_EXCEEDED_MAX_ACCOUNT_AMOUNTS          Result = 264
	StatusINVALID_ALIAS_KEY                                         Result = 269
	StatusMAX_ENTITIES_IN_PRICE_REGIME_HAVE_BEEN_CREATED            Result = 270
	StatusTOKEN_IS_PAUSED                                           Result = 277
	StatusSPENDER_DOES_NOT_HAVE_ALLOWANCE                           Result = 292
	StatusAMOUNT_EXCEEDS_ALLOWANCE                                  Result = 293
	StatusUNEXPECTED_TOKEN_DECIMALS                                 Result = 300
)

// String returns the canonical name of the status code
func (r Result) String() string {
	switch r {
	case StatusOK:
		return "OK"
	case StatusINVALID_TRANSACTION:
		return "INVALID_TRANSACTION"
	case StatusNOT_SUPPORTED:
		return "NOT_SUPPORTED"
	case StatusINVALID_ACCOUNT_ID:
		return "INVALID_ACCOUNT_ID"
	case StatusSUCCESS:
		return "SUCCESS"
	case StatusFAIL_INVALID:
		return "FAIL_INVALID"
	case StatusINSUFFICIENT_ACCOUNT_BALANCE:
		return "INSUFFICIENT_ACCOUNT_BALANCE"
	case StatusINVALID_ACCOUNT_AMOUNTS:
		return "INVALID_ACCOUNT_AMOUNTS"
	case StatusACCOUNT_DELETED:
		return "ACCOUNT_DELETED"
	case StatusACCOUNT_REPEATED_IN_ACCOUNT_AMOUNTS:
		return "ACCOUNT_REPEATED_IN_ACCOUNT_AMOUNTS"
	case StatusINVALID_TRANSACTION_BODY:
		return "INVALID_TRANSACTION_BODY"
	case StatusINVALID_PAYER_ACCOUNT_ID:
		return "INVALID_PAYER_ACCOUNT_ID"
	case StatusTRANSFER_LIST_SIZE_LIMIT_EXCEEDED:
		return "TRANSFER_LIST_SIZE_LIMIT_EXCEEDED"
	case StatusACCOUNT_FROZEN_FOR_TOKEN:
		return "ACCOUNT_FROZEN_FOR_TOKEN"
	case StatusINVALID_TOKEN_ID:
		return "INVALID_TOKEN_ID"
	case StatusACCOUNT_KYC_NOT_GRANTED_FOR_TOKEN:
		return "ACCOUNT_KYC_NOT_GRANTED_FOR_TOKEN"
	case StatusINSUFFICIENT_TOKEN_BALANCE:
		return "INSUFFICIENT_TOKEN_BALANCE"
	case StatusTOKEN_WAS_DELETED:
		return "TOKEN_WAS_DELETED"
	case StatusTOKEN_NOT_ASSOCIATED_TO_ACCOUNT:
		return "TOKEN_NOT_ASSOCIATED_TO_ACCOUNT"
	case StatusTRANSFERS_NOT_ZERO_SUM_FOR_TOKEN:
		return "TRANSFERS_NOT_ZERO_SUM_FOR_TOKEN"
	case StatusTOKEN_TRANSFER_LIST_SIZE_LIMIT_EXCEEDED:
		return "TOKEN_TRANSFER_LIST_SIZE_LIMIT_EXCEEDED"
	case StatusEMPTY_TOKEN_TRANSFER_BODY:
		return "EMPTY_TOKEN_TRANSFER_BODY"
	case StatusEMPTY_TOKEN_TRANSFER_ACCOUNT_AMOUNTS:
		return "EMPTY_TOKEN_TRANSFER_ACCOUNT_AMOUNTS"
	case StatusTOKEN_ID_REPEATED_IN_TOKEN_LIST:
		return "TOKEN_ID_REPEATED_IN_TOKEN_LIST"
	case StatusTOKENS_PER_ACCOUNT_LIMIT_EXCEEDED:
		return "TOKENS_PER_ACCOUNT_LIMIT_EXCEEDED"
	case StatusINVALID_NFT_ID:
		return "INVALID_NFT_ID"
	case StatusSENDER_DOES_NOT_OWN_NFT_SERIAL_NO:
		return "SENDER_DOES_NOT_OWN_NFT_SERIAL_NO"
	case StatusBATCH_SIZE_LIMIT_EXCEEDED:
		return "BATCH_SIZE_LIMIT_EXCEEDED"
	case StatusCUSTOM_FEE_OUTSIDE_NUMERIC_RANGE:
		return "CUSTOM_FEE_OUTSIDE_NUMERIC_RANGE"
	case StatusCUSTOM_FEE_CHARGING_EXCEEDED_MAX_RECURSION_DEPTH:
		return "CUSTOM_FEE_CHARGING_EXCEEDED_MAX_RECURSION_DEPTH"
	case StatusTOKEN_NOT_ASSOCIATED_TO_FEE_COLLECTOR:
		return "TOKEN_NOT_ASSOCIATED_TO_FEE_COLLECTOR"
	case StatusINSUFFICIENT_SENDER_ACCOUNT_BALANCE_FOR_CUSTOM_FEE:
		return "INSUFFICIENT_SENDER_ACCOUNT_BALANCE_FOR_CUSTOM_FEE"
	case StatusACCOUNT_AMOUNT_TRANSFERS_ONLY_ALLOWED_FOR_FUNGIBLE_COMMON:
		return "ACCOUNT_AMOUNT_TRANSFERS_ONLY_ALLOWED_FOR_FUNGIBLE_COMMON"
	case StatusNFT_TRANSFERS_ONLY_ALLOWED_FOR_NON_FUNGIBLE_UNIQUE:
		return "NFT_TRANSFERS_ONLY_ALLOWED_FOR_NON_FUNGIBLE_UNIQUE"
	case StatusNO_REMAINING_AUTOMATIC_ASSOCIATIONS:
		return "NO_REMAINING_AUTOMATIC_ASSOCIATIONS"
	case StatusCUSTOM_FEE_CHARGING_EXCEEDED_MAX_ACCOUNT_AMOUNTS:
		return "CUSTOM_FEE_CHARGING_EXCEEDED_MAX_ACCOUNT_AMOUNTS"
	case StatusINVALID_ALIAS_KEY:
		return "INVALID_ALIAS_KEY"
	case StatusMAX_ENTITIES_IN_PRICE_REGIME_HAVE_BEEN_CREATED:
		return "MAX_ENTITIES_IN_PRICE_REGIME_HAVE_BEEN_CREATED"
	case StatusTOKEN_IS_PAUSED:
		return "TOKEN_IS_PAUSED"
	case StatusSPENDER_DOES_NOT_HAVE_ALLOWANCE:
		return "SPENDER_DOES_NOT_HAVE_ALLOWANCE"
	case StatusAMOUNT_EXCEEDS_ALLOWANCE:
		return "AMOUNT_EXCEEDS_ALLOWANCE"
	case StatusUNEXPECTED_TOKEN_DECIMALS:
		return "UNEXPECTED_TOKEN_DECIMALS"
	default:
		return fmt.Sprintf("Result(%d)", int(r))
	}
}

// IsSuccess returns true if the result indicates success
func (r Result) IsSuccess() bool {
	return r == StatusSUCCESS || r == StatusOK
}

// Error implements the error interface so a failing status can be returned
// through error-typed paths and matched with errors.Is.
func (r Result) Error() string {
	return r.String()
}

// ResultError pairs a failure status with the underlying cause.
type ResultError struct {
	Result Result
	Err    error
}

func (e *ResultError) Error() string {
	if e.Err == nil {
		return e.Result.String()
	}
	return fmt.Sprintf("%s: %v", e.Result, e.Err)
}

func (e *ResultError) Unwrap() error {
	return e.Err
}

// Is matches a ResultError against a bare Result.
func (e *ResultError) Is(target error) bool {
	r, ok := target.(Result)
	return ok && r == e.Result
}

// ResultOf extracts the status carried by err. Errors that carry no status
// are internal faults and map to StatusFAIL_INVALID.
func ResultOf(err error) Result {
	if err == nil {
		return StatusSUCCESS
	}
	var re *ResultError
	if errors.As(err, &re) {
		return re.Result
	}
	var r Result
	if errors.As(err, &r) {
		return r
	}
	return StatusFAIL_INVALID
}

// Failf returns a ResultError for status with a formatted cause.
func Failf(status Result, format string, args ...any) error {
	return &ResultError{Result: status, Err: fmt.Errorf(format, args...)}
}
