// Copyright (C) 2022-2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package ux

import (
	"fmt"
	"io"
	"strings"

	"github.com/olekukonko/tablewriter"
	"go.uber.org/zap"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

var Logger *UserLog

// UserLog writes user facing messages to [writer] and mirrors them to the log.
// Deployment output that scripts parse never goes through it.
type UserLog struct {
	log    *zap.Logger
	writer io.Writer
}

func NewUserLog(log *zap.Logger, userwriter io.Writer) {
	Logger = &UserLog{
		log:    log,
		writer: userwriter,
	}
}

// PrintToUser prints msg directly to the user writer
func (ul *UserLog) PrintToUser(msg string, args ...interface{}) {
	formattedMsg := fmt.Sprintf(msg, args...)
	_, _ = fmt.Fprintln(ul.writer, formattedMsg)
	ul.log.Debug(formattedMsg)
}

// Info logs an info message
func (ul *UserLog) Info(msg string, args ...interface{}) {
	ul.log.Info(fmt.Sprintf(msg, args...))
}

// NewTable creates a table writing to [w], with [headers] as first row
func NewTable(w io.Writer, headers ...string) *tablewriter.Table {
	table := tablewriter.NewWriter(w)
	// Note: header set through Append to keep the same rendering across tablewriter v1 minors
	if len(headers) > 0 {
		_ = table.Append(headers)
	}
	return table
}

func ConvertToStringWithThousandSeparator(input uint64) string {
	p := message.NewPrinter(language.English)
	s := p.Sprintf("%d", input)
	return strings.ReplaceAll(s, ",", "_")
}
