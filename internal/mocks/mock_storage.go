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

// Package mocks holds hand-written golang/mock-shaped mocks of the external
// collaborators generated dialogue code and the compiler pipeline depend
// on: Storage (the mutable variable store every emitted node's Advance
// method reads and writes, mirroring internal/emit/templates.go's
// generated runtime.Storage contract exactly so a project can unit-test
// its own Storage implementation, or a node's Advance method, against this
// mock instead of a real one) and CodeWriter (internal/emit.Writer's
// narrow interface, so internal/compiler's Write step can be tested
// without touching a filesystem).
package mocks

import (
	"reflect"

	"github.com/golang/mock/gomock"
)

// Storage mirrors internal/emit/templates.go's generated runtime.Storage
// interface. It is declared here, independent of any one project's
// generated code, purely so MockStorage has something concrete to
// implement.
type Storage interface {
	GetString(name string) string
	SetString(name string, v string)
	GetBool(name string) bool
	SetBool(name string, v bool)
	GetInt64(name string) int64
	SetInt64(name string, v int64)
	GetFloat64(name string) float64
	SetFloat64(name string, v float64)
	VisitCount(node string) int64
	RecordVisit(node string)
}

// MockStorage is a gomock-generated-style mock of Storage.
type MockStorage struct {
	ctrl     *gomock.Controller
	recorder *MockStorageMockRecorder
}

// MockStorageMockRecorder records expected calls on a MockStorage.
type MockStorageMockRecorder struct {
	mock *MockStorage
}

// NewMockStorage returns a new mock controlled by ctrl.
func NewMockStorage(ctrl *gomock.Controller) *MockStorage {
	m := &MockStorage{ctrl: ctrl}
	m.recorder = &MockStorageMockRecorder{m}
	return m
}

// EXPECT returns an object that allows the caller to indicate expected use.
func (m *MockStorage) EXPECT() *MockStorageMockRecorder { return m.recorder }

func (m *MockStorage) GetString(name string) string {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "GetString", name)
	s, _ := ret[0].(string)
	return s
}

func (mr *MockStorageMockRecorder) GetString(name any) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "GetString", reflect.TypeOf((*MockStorage)(nil).GetString), name)
}

func (m *MockStorage) SetString(name string, v string) {
	m.ctrl.T.Helper()
	m.ctrl.Call(m, "SetString", name, v)
}

func (mr *MockStorageMockRecorder) SetString(name, v any) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "SetString", reflect.TypeOf((*MockStorage)(nil).SetString), name, v)
}

func (m *MockStorage) GetBool(name string) bool {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "GetBool", name)
	b, _ := ret[0].(bool)
	return b
}

func (mr *MockStorageMockRecorder) GetBool(name any) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "GetBool", reflect.TypeOf((*MockStorage)(nil).GetBool), name)
}

func (m *MockStorage) SetBool(name string, v bool) {
	m.ctrl.T.Helper()
	m.ctrl.Call(m, "SetBool", name, v)
}

func (mr *MockStorageMockRecorder) SetBool(name, v any) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "SetBool", reflect.TypeOf((*MockStorage)(nil).SetBool), name, v)
}

func (m *MockStorage) GetInt64(name string) int64 {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "GetInt64", name)
	i, _ := ret[0].(int64)
	return i
}

func (mr *MockStorageMockRecorder) GetInt64(name any) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "GetInt64", reflect.TypeOf((*MockStorage)(nil).GetInt64), name)
}

func (m *MockStorage) SetInt64(name string, v int64) {
	m.ctrl.T.Helper()
	m.ctrl.Call(m, "SetInt64", name, v)
}

func (mr *MockStorageMockRecorder) SetInt64(name, v any) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "SetInt64", reflect.TypeOf((*MockStorage)(nil).SetInt64), name, v)
}

func (m *MockStorage) GetFloat64(name string) float64 {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "GetFloat64", name)
	f, _ := ret[0].(float64)
	return f
}

func (mr *MockStorageMockRecorder) GetFloat64(name any) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "GetFloat64", reflect.TypeOf((*MockStorage)(nil).GetFloat64), name)
}

func (m *MockStorage) SetFloat64(name string, v float64) {
	m.ctrl.T.Helper()
	m.ctrl.Call(m, "SetFloat64", name, v)
}

func (mr *MockStorageMockRecorder) SetFloat64(name, v any) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "SetFloat64", reflect.TypeOf((*MockStorage)(nil).SetFloat64), name, v)
}

func (m *MockStorage) VisitCount(node string) int64 {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "VisitCount", node)
	c, _ := ret[0].(int64)
	return c
}

func (mr *MockStorageMockRecorder) VisitCount(node any) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "VisitCount", reflect.TypeOf((*MockStorage)(nil).VisitCount), node)
}

func (m *MockStorage) RecordVisit(node string) {
	m.ctrl.T.Helper()
	m.ctrl.Call(m, "RecordVisit", node)
}

func (mr *MockStorageMockRecorder) RecordVisit(node any) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "RecordVisit", reflect.TypeOf((*MockStorage)(nil).RecordVisit), node)
}
