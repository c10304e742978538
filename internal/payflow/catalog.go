package payflow

// Tender identifies the funding instrument sent in the TENDER field.
type Tender string

const (
	TenderACH          Tender = "A"
	TenderCreditCard   Tender = "C"
	TenderPinlessDebit Tender = "D"
	TenderTelecheck    Tender = "K"
	TenderPayPal       Tender = "P"
)

// TrxType is the operation code sent in the TRXTYPE field.
type TrxType string

const (
	TrxAuthorization        TrxType = "A"
	TrxBalanceInquiry       TrxType = "B"
	TrxCredit               TrxType = "C"
	TrxDelayedCapture       TrxType = "D"
	TrxVoiceAuthorization   TrxType = "F"
	TrxInquiry              TrxType = "I"
	TrxRateLookup           TrxType = "K"
	TrxDataUpload           TrxType = "L"
	TrxDuplicateTransaction TrxType = "N"
	TrxSale                 TrxType = "S"
	TrxVoid                 TrxType = "V"
)

// Verbosity controls how much detail the gateway returns. HIGH is
// requested whenever fraud or AVS detail matters.
type Verbosity string

const (
	VerbosityHigh   Verbosity = "HIGH"
	VerbosityMedium Verbosity = "MEDIUM"
)

// ResultCode is the gateway-reported outcome of a single transaction,
// carried in the RESULT response field.
type ResultCode int

const (
	ResultApproved              ResultCode = 0
	ResultUserAuthFailed        ResultCode = 1
	ResultInvalidAmount         ResultCode = 4
	ResultDeclined              ResultCode = 12
	ResultReferral              ResultCode = 13
	ResultInvalidAccountNumber  ResultCode = 23
	ResultInvalidExpirationDate ResultCode = 24
	ResultCreditError           ResultCode = 105
	ResultFraudReview           ResultCode = 126
	ResultFraudNotScreened      ResultCode = 127
	ResultGenericHostError      ResultCode = 1000
)

// Outcome partitions result codes into the three classes the client
// reports. Codes outside the known review set never fall through
// silently: anything that is not approved or under review is a decline.
type Outcome int

const (
	OutcomeApproved Outcome = iota
	OutcomeReview
	OutcomeDeclined
)

func (o Outcome) String() string {
	switch o {
	case OutcomeApproved:
		return "approved"
	case OutcomeReview:
		return "review"
	default:
		return "declined"
	}
}

// Classify maps a result code to its outcome class. The review class is
// honored as success only during card verification; every other operation
// treats it as a decline.
func (c ResultCode) Classify() Outcome {
	switch c {
	case ResultApproved:
		return OutcomeApproved
	case ResultFraudReview, ResultFraudNotScreened:
		return OutcomeReview
	default:
		return OutcomeDeclined
	}
}

// TransactionState is the gateway's settlement lifecycle status, reported
// in the TRANSSTATE field on verbose responses. Informational only; local
// state transitions are never gated on it.
type TransactionState int

const (
	StateAccountVerification     TransactionState = 0
	StateGeneralError            TransactionState = 1
	StateAuthorizationApproved   TransactionState = 3
	StatePartialCapture          TransactionState = 4
	StateSettlementPending       TransactionState = 6
	StateSettlementInProgress    TransactionState = 7
	StateSettledSuccessfully     TransactionState = 8
	StateAuthorizationCaptured   TransactionState = 9
	StateCaptureFailed           TransactionState = 10
	StateFailedToSettle          TransactionState = 11
	StateIncorrectAccountInfo    TransactionState = 12
	StateBatchFailed             TransactionState = 14
	StateChargeBack              TransactionState = 15
	StateACHFailed               TransactionState = 16
	StateUnknownStatus           TransactionState = 106
	StateOnHold                  TransactionState = 206
)

func (s TransactionState) String() string {
	switch s {
	case StateAccountVerification:
		return "account_verification"
	case StateGeneralError:
		return "general_error"
	case StateAuthorizationApproved:
		return "authorization_approved"
	case StatePartialCapture:
		return "partial_capture"
	case StateSettlementPending:
		return "settlement_pending"
	case StateSettlementInProgress:
		return "settlement_in_progress"
	case StateSettledSuccessfully:
		return "settled_successfully"
	case StateAuthorizationCaptured:
		return "authorization_captured"
	case StateCaptureFailed:
		return "capture_failed"
	case StateFailedToSettle:
		return "failed_to_settle"
	case StateIncorrectAccountInfo:
		return "incorrect_account_information"
	case StateBatchFailed:
		return "batch_failed"
	case StateChargeBack:
		return "charge_back"
	case StateACHFailed:
		return "ach_failed"
	case StateOnHold:
		return "on_hold"
	default:
		return "unknown_status"
	}
}

// Request field names. Keys are written lower-case here and upper-cased by
// the codec on the wire.
const (
	FieldTrxType   = "trxtype"
	FieldTender    = "tender"
	FieldPartner   = "partner"
	FieldVendor    = "vendor"
	FieldUser      = "user"
	FieldPassword  = "pwd"
	FieldAmount    = "amt"
	FieldCurrency  = "currency"
	FieldOrigID    = "origid"
	FieldVerbosity = "verbosity"
	FieldAccount   = "acct"
	FieldExpDate   = "expdate"
	FieldCVV2      = "cvv2"
)

// Response field names, as lower-cased by the codec.
const (
	FieldResult     = "result"
	FieldRespMsg    = "respmsg"
	FieldPNRef      = "pnref"
	FieldTransState = "transstate"
	FieldAVSAddr    = "avsaddr"
	FieldAVSZip     = "avszip"
	FieldCVV2Match  = "cvv2match"
)
