// Copyright 2025 Orebase Team
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//      http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package log

import (
	"go.uber.org/zap"
)

// Package-level helpers writing through the global sugared logger.

func Info(args ...any) {
	sugar.Info(args...)
}

func Infof(format string, args ...any) {
	sugar.Infof(format, args...)
}

func Infow(msg string, keysAndValues ...any) {
	sugar.Infow(msg, keysAndValues...)
}

func Debug(args ...any) {
	sugar.Debug(args...)
}

func Debugf(format string, args ...any) {
	sugar.Debugf(format, args...)
}

func Debugw(msg string, keysAndValues ...any) {
	sugar.Debugw(msg, keysAndValues...)
}

func Warn(args ...any) {
	sugar.Warn(args...)
}

func Warnf(format string, args ...any) {
	sugar.Warnf(format, args...)
}

func Warnw(msg string, keysAndValues ...any) {
	sugar.Warnw(msg, keysAndValues...)
}

func Error(args ...any) {
	sugar.Error(args...)
}

func Errorf(format string, args ...any) {
	sugar.Errorf(format, args...)
}

func Errorw(msg string, keysAndValues ...any) {
	sugar.Errorw(msg, keysAndValues...)
}

func Fatal(args ...any) {
	sugar.Fatal(args...)
}

func Fatalf(format string, args ...any) {
	sugar.Fatalf(format, args...)
}

// With returns a child logger with the given structured context.
func With(keysAndValues ...any) *zap.SugaredLogger {
	return sugar.With(keysAndValues...)
}
