package lpfolio

import (
	"errors"
	"fmt"
	"iter"
	"maps"
	"slices"

	"github.com/etnz/lpfolio/date"
	"github.com/shopspring/decimal"
)

// CommandType is a typed string for identifying transaction commands.
type CommandType string

// Command types used for identifying transactions.
const (
	CmdDeclare     CommandType = "declare"
	CmdDeposit     CommandType = "deposit"
	CmdWithdraw    CommandType = "withdraw"
	CmdBuy         CommandType = "buy"
	CmdSell        CommandType = "sell"
	CmdInterest    CommandType = "interest"
	CmdUpdatePrice CommandType = "update-price"
)

// Transaction defines the common interface for all types of transactions
// that can be recorded in the ledger.
type Transaction interface {
	What() CommandType // What returns the command type of the transaction (e.g., "buy", "interest").
	When() date.Date   // When returns the date on which the transaction occurred.
	Equal(Transaction) bool
	Validate(ledger *Ledger) (Transaction, error)
}

// Funding is the canonical view of a transaction that puts money into an asset.
type Funding struct {
	Date     date.Date
	Symbol   string
	Quantity Quantity
	Cost     Money // total paid for Quantity, zero when unknown
}

// Funder is implemented by transactions that fund an asset (deposit and buy).
type Funder interface {
	Transaction
	Funding() Funding
}

type baseCmd struct {
	Command CommandType `json:"command"`        // Command specifies the type of transaction.
	Date    date.Date   `json:"date"`           // Date is the date when the transaction took place.
	Memo    string      `json:"memo,omitempty"` // Memo provides an optional note for the transaction.
}

func (t baseCmd) What() CommandType { return t.Command }
func (t baseCmd) When() date.Date   { return t.Date }
func (t baseCmd) Note() string      { return t.Memo }

// MarshalJSON implements the json.Marshaler interface for baseCmd.
func (t baseCmd) MarshalJSON() ([]byte, error) {
	var w jsonObjectWriter
	w.Append("command", t.Command)
	w.Append("date", t.Date)
	w.Optional("memo", t.Memo)
	return w.MarshalJSON()
}

// Validate sets the date to today if it's zero.
func (t *baseCmd) Validate() {
	if t.Date.IsZero() {
		t.Date = date.Today()
	}
}

// assetCmd is the component of transactions moving a quantity of one asset.
type assetCmd struct {
	baseCmd
	Asset    string   `json:"asset"`
	Quantity Quantity `json:"quantity"`
}

// MarshalJSON implements the json.Marshaler interface for assetCmd.
func (t assetCmd) MarshalJSON() ([]byte, error) {
	var w jsonObjectWriter
	w.EmbedFrom(t.baseCmd)
	w.Append("asset", t.Asset)
	w.Append("quantity", t.Quantity)
	return w.MarshalJSON()
}

func (t assetCmd) equal(o assetCmd) bool {
	return t.baseCmd == o.baseCmd && t.Asset == o.Asset && t.Quantity.Equal(o.Quantity)
}

// Validate checks the base fields and that the asset is named.
// A zero quantity is accepted only when allowAll is set, it then means "all of it".
func (t *assetCmd) Validate(allowAll bool) error {
	t.baseCmd.Validate()
	if t.Asset == "" {
		return errors.New("asset symbol is missing")
	}
	if t.Quantity.IsNegative() || (t.Quantity.IsZero() && !allowAll) {
		return fmt.Errorf("quantity must be positive, got %s", t.Quantity)
	}
	return nil
}

// --- Declare Command ---

// Declare starts tracking an asset, and marks it as a liquidity pool position
// when Pool is set.
type Declare struct {
	baseCmd
	Symbol string `json:"symbol"`
	Name   string `json:"name,omitempty"`
	Pool   *Pool  `json:"pool,omitempty"`
}

// NewDeclare creates a new Declare transaction.
func NewDeclare(day date.Date, memo, symbol, name string, pool *Pool) Declare {
	return Declare{
		baseCmd: baseCmd{Command: CmdDeclare, Date: day, Memo: memo},
		Symbol:  symbol,
		Name:    name,
		Pool:    pool,
	}
}

// MarshalJSON implements the json.Marshaler interface for Declare.
func (t Declare) MarshalJSON() ([]byte, error) {
	var w jsonObjectWriter
	w.EmbedFrom(t.baseCmd)
	w.Append("symbol", t.Symbol)
	w.Optional("name", t.Name)
	w.Optional("pool", t.Pool)
	return w.MarshalJSON()
}

func (t Declare) Equal(other Transaction) bool {
	o, ok := other.(Declare)
	if !ok || t.baseCmd != o.baseCmd || t.Symbol != o.Symbol || t.Name != o.Name {
		return false
	}
	if t.Pool == nil || o.Pool == nil {
		return t.Pool == o.Pool
	}
	return *t.Pool == *o.Pool
}

// Validate checks that the symbol is new and the pool metadata consistent.
func (t Declare) Validate(ledger *Ledger) (Transaction, error) {
	t.baseCmd.Validate()
	if t.Symbol == "" {
		return t, errors.New("declaration symbol is missing")
	}
	if ledger.Asset(t.Symbol) != nil {
		return t, fmt.Errorf("asset %q already declared", t.Symbol)
	}
	if t.Pool != nil {
		if err := t.Pool.Validate(); err != nil {
			return t, fmt.Errorf("invalid pool for %q: %w", t.Symbol, err)
		}
	}
	return t, nil
}

// --- Deposit Command ---

// Deposit records tokens transferred into the portfolio, optionally with what
// they cost.
type Deposit struct {
	assetCmd
	Cost Money // Cost is the total value paid for the deposited quantity.
}

// NewDeposit creates a new Deposit transaction.
func NewDeposit(day date.Date, memo, asset string, quantity Quantity, cost Money) Deposit {
	return Deposit{
		assetCmd: assetCmd{baseCmd: baseCmd{Command: CmdDeposit, Date: day, Memo: memo}, Asset: asset, Quantity: quantity},
		Cost:     cost,
	}
}

// MarshalJSON implements the json.Marshaler interface for Deposit.
func (t Deposit) MarshalJSON() ([]byte, error) {
	var w jsonObjectWriter
	w.EmbedFrom(t.assetCmd)
	if !t.Cost.IsZero() {
		w.EmbedFrom(t.Cost)
	}
	return w.MarshalJSON()
}

func (t Deposit) Equal(other Transaction) bool {
	o, ok := other.(Deposit)
	return ok && t.assetCmd.equal(o.assetCmd) && t.Cost.Equal(o.Cost)
}

func (t Deposit) Funding() Funding {
	return Funding{Date: t.Date, Symbol: t.Asset, Quantity: t.Quantity, Cost: t.Cost}
}

// Validate checks the deposit quantity and cost.
func (t Deposit) Validate(ledger *Ledger) (Transaction, error) {
	if err := t.assetCmd.Validate(false); err != nil {
		return t, err
	}
	if t.Cost.IsNegative() {
		return t, fmt.Errorf("deposit cost cannot be negative, got %s", t.Cost)
	}
	cost, err := usdAmount("deposit cost", t.Cost)
	if err != nil {
		return t, err
	}
	t.Cost = cost
	return t, nil
}

// usdAmount defaults an amount without currency to USD. Any other currency is
// rejected, the ledger accounts for capital in USD only.
func usdAmount(what string, m Money) (Money, error) {
	switch m.Currency() {
	case "":
		return m.withCurrency(USD), nil
	case USD:
		return m, nil
	}
	return m, fmt.Errorf("%s must be in %s, got %s", what, USD, m.Currency())
}

// --- Withdraw Command ---

// Withdraw records tokens transferred out of the portfolio.
type Withdraw struct {
	assetCmd
}

// NewWithdraw creates a new Withdraw transaction. A zero quantity withdraws
// the whole position, resolved during validation.
func NewWithdraw(day date.Date, memo, asset string, quantity Quantity) Withdraw {
	return Withdraw{
		assetCmd: assetCmd{baseCmd: baseCmd{Command: CmdWithdraw, Date: day, Memo: memo}, Asset: asset, Quantity: quantity},
	}
}

func (t Withdraw) Equal(other Transaction) bool {
	o, ok := other.(Withdraw)
	return ok && t.assetCmd.equal(o.assetCmd)
}

// Validate resolves "withdraw all" and checks the position covers the quantity.
func (t Withdraw) Validate(ledger *Ledger) (Transaction, error) {
	if err := t.assetCmd.Validate(true); err != nil {
		return t, err
	}
	pos := ledger.Position(t.Asset, t.Date)
	if t.Quantity.IsZero() {
		t.Quantity = pos
	}
	if !t.Quantity.IsPositive() {
		return t, fmt.Errorf("nothing to withdraw, %s position is %s", t.Asset, pos)
	}
	if pos.LessThan(t.Quantity) {
		return t, fmt.Errorf("on %s, cannot withdraw %s %s, position is only %s", t.Date, t.Quantity, t.Asset, pos)
	}
	return t, nil
}

// --- Buy Command ---

// Buy records tokens bought for an amount.
type Buy struct {
	assetCmd
	Amount Money // Amount is the total cost of the purchase.
}

// NewBuy creates a new Buy transaction.
func NewBuy(day date.Date, memo, asset string, quantity Quantity, amount Money) Buy {
	return Buy{
		assetCmd: assetCmd{baseCmd: baseCmd{Command: CmdBuy, Date: day, Memo: memo}, Asset: asset, Quantity: quantity},
		Amount:   amount,
	}
}

// MarshalJSON implements the json.Marshaler interface for Buy.
func (t Buy) MarshalJSON() ([]byte, error) {
	var w jsonObjectWriter
	w.EmbedFrom(t.assetCmd)
	w.EmbedFrom(t.Amount)
	return w.MarshalJSON()
}

func (t Buy) Equal(other Transaction) bool {
	o, ok := other.(Buy)
	return ok && t.assetCmd.equal(o.assetCmd) && t.Amount.Equal(o.Amount)
}

func (t Buy) Funding() Funding {
	return Funding{Date: t.Date, Symbol: t.Asset, Quantity: t.Quantity, Cost: t.Amount}
}

// Validate checks that quantity and amount are positive.
func (t Buy) Validate(ledger *Ledger) (Transaction, error) {
	if err := t.assetCmd.Validate(false); err != nil {
		return t, err
	}
	if !t.Amount.IsPositive() {
		return t, fmt.Errorf("buy amount must be positive, got %s", t.Amount)
	}
	amount, err := usdAmount("buy amount", t.Amount)
	if err != nil {
		return t, err
	}
	t.Amount = amount
	return t, nil
}

// --- Sell Command ---

// Sell records tokens sold for an amount.
type Sell struct {
	assetCmd
	Amount Money // Amount is the total proceeds from the sale.
}

// NewSell creates a new Sell transaction. A zero quantity sells the whole
// position, resolved during validation.
func NewSell(day date.Date, memo, asset string, quantity Quantity, amount Money) Sell {
	return Sell{
		assetCmd: assetCmd{baseCmd: baseCmd{Command: CmdSell, Date: day, Memo: memo}, Asset: asset, Quantity: quantity},
		Amount:   amount,
	}
}

// MarshalJSON implements the json.Marshaler interface for Sell.
func (t Sell) MarshalJSON() ([]byte, error) {
	var w jsonObjectWriter
	w.EmbedFrom(t.assetCmd)
	w.EmbedFrom(t.Amount)
	return w.MarshalJSON()
}

func (t Sell) Equal(other Transaction) bool {
	o, ok := other.(Sell)
	return ok && t.assetCmd.equal(o.assetCmd) && t.Amount.Equal(o.Amount)
}

// Validate resolves "sell all" and checks the position covers the sale.
func (t Sell) Validate(ledger *Ledger) (Transaction, error) {
	if err := t.assetCmd.Validate(true); err != nil {
		return t, err
	}
	if !t.Amount.IsPositive() {
		return t, fmt.Errorf("sell amount must be positive, got %s", t.Amount)
	}
	amount, err := usdAmount("sell amount", t.Amount)
	if err != nil {
		return t, err
	}
	t.Amount = amount
	pos := ledger.Position(t.Asset, t.Date)
	if t.Quantity.IsZero() {
		t.Quantity = pos
	}
	if !t.Quantity.IsPositive() {
		return t, fmt.Errorf("nothing to sell, %s position is %s", t.Asset, pos)
	}
	if pos.LessThan(t.Quantity) {
		return t, fmt.Errorf("on %s, cannot sell %s %s, position is only %s", t.Date, t.Quantity, t.Asset, pos)
	}
	return t, nil
}

// --- Interest Command ---

// Interest records a reward received in Asset, earned by the Sources assets
// (typically the liquidity pool positions that generated it).
type Interest struct {
	assetCmd
	Sources []string
}

// NewInterest creates a new Interest transaction.
func NewInterest(day date.Date, memo, asset string, quantity Quantity, sources ...string) Interest {
	return Interest{
		assetCmd: assetCmd{baseCmd: baseCmd{Command: CmdInterest, Date: day, Memo: memo}, Asset: asset, Quantity: quantity},
		Sources:  normalizeSources(sources),
	}
}

// normalizeSources drops empty and duplicated symbols, keeping the first occurrence order.
func normalizeSources(sources []string) []string {
	var res []string
	for _, s := range sources {
		if s != "" && !slices.Contains(res, s) {
			res = append(res, s)
		}
	}
	return res
}

// MarshalJSON implements the json.Marshaler interface for Interest.
func (t Interest) MarshalJSON() ([]byte, error) {
	var w jsonObjectWriter
	w.EmbedFrom(t.assetCmd)
	w.Optional("sources", t.Sources)
	return w.MarshalJSON()
}

func (t Interest) Equal(other Transaction) bool {
	o, ok := other.(Interest)
	return ok && t.assetCmd.equal(o.assetCmd) && slices.Equal(t.Sources, o.Sources)
}

// Validate checks the reward quantity and cleans up the sources.
func (t Interest) Validate(ledger *Ledger) (Transaction, error) {
	if err := t.assetCmd.Validate(false); err != nil {
		return t, err
	}
	t.Sources = normalizeSources(t.Sources)
	return t, nil
}

// --- UpdatePrice Command ---

// UpdatePrice records the USD prices of assets on a specific date.
type UpdatePrice struct {
	baseCmd
	Prices map[string]decimal.Decimal
}

// NewUpdatePrices creates a new UpdatePrice transaction.
func NewUpdatePrices(day date.Date, prices map[string]decimal.Decimal) UpdatePrice {
	if prices == nil {
		prices = make(map[string]decimal.Decimal)
	}
	return UpdatePrice{
		baseCmd: baseCmd{Command: CmdUpdatePrice, Date: day},
		Prices:  prices,
	}
}

// MarshalJSON implements the json.Marshaler interface for UpdatePrice.
func (t UpdatePrice) MarshalJSON() ([]byte, error) {
	var w jsonObjectWriter
	w.EmbedFrom(t.baseCmd)

	// prices are written in symbol order.
	var prices jsonObjectWriter
	for symbol, price := range t.PricesIter() {
		prices.Append(symbol, price)
	}
	w.Append("prices", &prices)
	return w.MarshalJSON()
}

// PricesIter yields symbol and price pairs in symbol order.
func (t UpdatePrice) PricesIter() iter.Seq2[string, decimal.Decimal] {
	keys := slices.Sorted(maps.Keys(t.Prices))
	return func(yield func(string, decimal.Decimal) bool) {
		for _, key := range keys {
			if !yield(key, t.Prices[key]) {
				return
			}
		}
	}
}

func (t UpdatePrice) Equal(other Transaction) bool {
	o, ok := other.(UpdatePrice)
	if !ok || t.baseCmd != o.baseCmd || len(t.Prices) != len(o.Prices) {
		return false
	}
	for k, v := range t.Prices {
		if ov, ok := o.Prices[k]; !ok || !v.Equal(ov) {
			return false
		}
	}
	return true
}

// Validate checks that every price is positive.
func (t UpdatePrice) Validate(ledger *Ledger) (Transaction, error) {
	t.baseCmd.Validate()
	if len(t.Prices) == 0 {
		return t, errors.New("no price to update")
	}
	for symbol, price := range t.Prices {
		if !price.IsPositive() {
			return t, fmt.Errorf("price for %s must be positive, got %v", symbol, price)
		}
	}
	return t, nil
}
