// Copyright 2026 EngFlow Inc. All rights reserved.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package mocks

import (
	"context"
	"reflect"

	"github.com/golang/mock/gomock"

	"github.com/dialogscript/yarnc/internal/emit"
)

// MockCodeWriter is a gomock-generated-style mock of emit.CodeWriter.
type MockCodeWriter struct {
	ctrl     *gomock.Controller
	recorder *MockCodeWriterMockRecorder
}

// MockCodeWriterMockRecorder records expected calls on a MockCodeWriter.
type MockCodeWriterMockRecorder struct {
	mock *MockCodeWriter
}

// NewMockCodeWriter returns a new mock controlled by ctrl.
func NewMockCodeWriter(ctrl *gomock.Controller) *MockCodeWriter {
	m := &MockCodeWriter{ctrl: ctrl}
	m.recorder = &MockCodeWriterMockRecorder{m}
	return m
}

// EXPECT returns an object that allows the caller to indicate expected use.
func (m *MockCodeWriter) EXPECT() *MockCodeWriterMockRecorder { return m.recorder }

func (m *MockCodeWriter) WriteAll(ctx context.Context, artifacts []emit.Artifact) (int, error) {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "WriteAll", ctx, artifacts)
	n, _ := ret[0].(int)
	err, _ := ret[1].(error)
	return n, err
}

func (mr *MockCodeWriterMockRecorder) WriteAll(ctx, artifacts any) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "WriteAll", reflect.TypeOf((*MockCodeWriter)(nil).WriteAll), ctx, artifacts)
}
