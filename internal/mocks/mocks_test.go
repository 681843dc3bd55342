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
	"testing"

	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"

	"github.com/dialogscript/yarnc/internal/emit"
)

func TestMockStorage_RecordsGetAndSetCalls(t *testing.T) {
	ctrl := gomock.NewController(t)
	s := NewMockStorage(ctrl)

	s.EXPECT().GetInt64("visits").Return(int64(3))
	s.EXPECT().SetInt64("visits", int64(4))
	s.EXPECT().RecordVisit("Start")

	assert.Equal(t, int64(3), s.GetInt64("visits"))
	s.SetInt64("visits", 4)
	s.RecordVisit("Start")
}

func TestMockCodeWriter_WriteAllDelegatesToExpectation(t *testing.T) {
	ctrl := gomock.NewController(t)
	w := NewMockCodeWriter(ctrl)

	artifacts := []emit.Artifact{{Path: "runtime/runtime.go", Content: []byte("package runtime")}}
	w.EXPECT().WriteAll(gomock.Any(), artifacts).Return(1, nil)

	n, err := w.WriteAll(context.Background(), artifacts)
	assert.NoError(t, err)
	assert.Equal(t, 1, n)
}
