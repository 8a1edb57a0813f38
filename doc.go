// Package lpfolio tracks a personal crypto portfolio that includes
// concentrated liquidity pool positions. It is local-first and auditable:
// every event is a transaction in a human readable JSONL ledger.
//
// The core functionalities include:
//   - Ledger Management: declaring assets (with their pool range when they are
//     liquidity positions), and recording deposits, withdrawals, buys, sells,
//     rewards and prices in a chronological record.
//   - Earnings Attribution: grouping rewards by the pool positions that
//     produced them, with the ROI and APR of the capital invested.
//   - Position Valuation: current amounts, impermanent loss and hedge size of
//     every pool position, computed by the [clmath] package.
//   - Data Persistence: the [LedgerStore] and [PriceStore] interfaces,
//     implemented on top of the ledger itself or by the store package.
//
// This package serves as the foundational logic for the `lpf` command-line
// tool.
package lpfolio
