package convert

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const nsHeader = `xmlns="http://www.group-finity.com/Mascot"`

func mustConvert(t *testing.T, actionsXML, behaviorsXML string) (*Result, []Warning) {
	t.Helper()
	res, warnings, err := Convert([]byte(actionsXML), []byte(behaviorsXML))
	require.NoError(t, err)
	require.NotNil(t, res)
	return res, warnings
}

func TestConvertDiscoversProgramsDedupedByFirstOccurrence(t *testing.T) {
	actionsXML := `<Mascot ` + nsHeader + `><ActionList>
	  <Action Name="Stand" Type="Stay" Condition="${mascot.x} > 0" X="${mascot.x}">
	    <Animation>
	      <Pose Image="/img/stand.png" Duration="1"/>
	      <Pose Image="/img/stand2.png" Duration="1"/>
	    </Animation>
	  </Action>
	</ActionList></Mascot>`
	behaviorsXML := `<Mascot ` + nsHeader + `><BehaviorList>
	  <Behavior Name="StandBehavior" Action="Stand"/>
	</BehaviorList></Mascot>`

	res, _ := mustConvert(t, actionsXML, behaviorsXML)

	require.Len(t, res.Programs, 3)
	assert.Equal(t, []string{"${mascot.x} > 0", "${mascot.x}", "1"}, res.Programs)
}

func TestConvertInlinesNestedActionsUnderSequence(t *testing.T) {
	actionsXML := `<Mascot ` + nsHeader + `><ActionList>
	  <Action Name="Combo" Type="Sequence">
	    <Action Type="Stay">
	      <Animation><Pose Image="/img/a.png" Duration="1"/></Animation>
	    </Action>
	  </Action>
	</ActionList></Mascot>`
	behaviorsXML := `<Mascot ` + nsHeader + `><BehaviorList>
	  <Behavior Name="ComboBehavior" Action="Combo"/>
	</BehaviorList></Mascot>`

	res, _ := mustConvert(t, actionsXML, behaviorsXML)

	combo, ok := res.Actions.Get("Combo")
	require.True(t, ok)
	require.Len(t, combo.Content, 1)
	ref, ok := combo.Content[0].(*ActionReference)
	require.True(t, ok)
	assert.Equal(t, "___INLINED_ACTION_0", ref.ActionName)

	inlined, ok := res.Actions.Get("___INLINED_ACTION_0")
	require.True(t, ok)
	assert.Equal(t, string(ActionStay), inlined.Type)
}

func TestConvertDuplicateActionNameIsHardError(t *testing.T) {
	actionsXML := `<Mascot ` + nsHeader + `><ActionList>
	  <Action Name="Stand" Type="Stay">
	    <Animation><Pose Image="/img/a.png" Duration="1"/></Animation>
	  </Action>
	  <Action Name="Stand" Type="Stay">
	    <Animation><Pose Image="/img/b.png" Duration="1"/></Animation>
	  </Action>
	</ActionList></Mascot>`
	behaviorsXML := `<Mascot ` + nsHeader + `><BehaviorList></BehaviorList></Mascot>`

	_, _, err := Convert([]byte(actionsXML), []byte(behaviorsXML))
	require.Error(t, err)
}

func TestConvertBehaviorRedefinitionDowngradesToReference(t *testing.T) {
	actionsXML := `<Mascot ` + nsHeader + `><ActionList>
	  <Action Name="Stand" Type="Stay">
	    <Animation><Pose Image="/img/a.png" Duration="1"/></Animation>
	  </Action>
	</ActionList></Mascot>`
	behaviorsXML := `<Mascot ` + nsHeader + `><BehaviorList>
	  <Behavior Name="StandBehavior" Action="Stand">
	    <NextBehaviorList>
	      <Behavior Name="StandBehavior" Action="Stand"/>
	    </NextBehaviorList>
	  </Behavior>
	</BehaviorList></Mascot>`

	res, _ := mustConvert(t, actionsXML, behaviorsXML)

	def, ok := res.Behaviors.Get("StandBehavior")
	require.True(t, ok)
	require.Len(t, def.NextBehaviorList, 1)
	assert.Equal(t, "StandBehavior", def.NextBehaviorList[0].Name)
}

func TestConvertConditionProducesHiddenZeroFrequencyConditioner(t *testing.T) {
	actionsXML := `<Mascot ` + nsHeader + `><ActionList>
	  <Action Name="Stand" Type="Stay">
	    <Animation><Pose Image="/img/a.png" Duration="1"/></Animation>
	  </Action>
	</ActionList></Mascot>`
	behaviorsXML := `<Mascot ` + nsHeader + `><BehaviorList>
	  <Condition Condition="${mascot.x} > 0">
	    <Behavior Name="StandBehavior" Action="Stand"/>
	  </Condition>
	</BehaviorList></Mascot>`

	res, _ := mustConvert(t, actionsXML, behaviorsXML)

	require.Len(t, res.RootBehaviors, 1)
	assert.Equal(t, "___CONDITION_0", res.RootBehaviors[0].Name)

	cond, ok := res.Behaviors.Get("___CONDITION_0")
	require.True(t, ok)
	assert.True(t, cond.IsConditioner)
	assert.True(t, cond.Hidden)
	assert.Equal(t, 0, cond.Frequency)
	require.NotNil(t, cond.Condition)
	require.Len(t, cond.NextBehaviorList, 1)
	assert.Equal(t, "StandBehavior", cond.NextBehaviorList[0].Name)
}

func TestConvertSelectActionInheritsFirstHotspotAffordance(t *testing.T) {
	actionsXML := `<Mascot ` + nsHeader + `><ActionList>
	  <Action Name="Poke" Type="Select">
	    <Animation>
	      <Hotspot Shape="Rectangle" Origin="0,0" Size="10,10" Behavior="PokeResponse"/>
	    </Animation>
	  </Action>
	</ActionList></Mascot>`
	behaviorsXML := `<Mascot ` + nsHeader + `><BehaviorList>
	  <Behavior Name="PokeBehavior" Action="Poke"/>
	  <Behavior Name="PokeResponse" Action="Poke"/>
	</BehaviorList></Mascot>`

	res, _ := mustConvert(t, actionsXML, behaviorsXML)

	poke, ok := res.Actions.Get("Poke")
	require.True(t, ok)
	require.NotNil(t, poke.Affordance)
	assert.Equal(t, "PokeResponse", *poke.Affordance)
}

func TestConvertBornMascotEmptyResolvesToSelfSentinel(t *testing.T) {
	actionsXML := `<Mascot ` + nsHeader + `><ActionList>
	  <Action Name="Breed" Type="Embedded" Class="com.group_finity.mascot.action.Breed" BornMascot="">
	    <Animation><Pose Image="/img/a.png" Duration="1"/></Animation>
	  </Action>
	</ActionList></Mascot>`
	behaviorsXML := `<Mascot ` + nsHeader + `><BehaviorList>
	  <Behavior Name="BreedBehavior" Action="Breed"/>
	</BehaviorList></Mascot>`

	res, _ := mustConvert(t, actionsXML, behaviorsXML)

	breed, ok := res.Actions.Get("Breed")
	require.True(t, ok)
	require.NotNil(t, breed.BornMascot)
	assert.Equal(t, selfMascotSentinel, *breed.BornMascot)
}

func TestConvertSortsNonSequenceActionsBeforeSequenceActions(t *testing.T) {
	actionsXML := `<Mascot ` + nsHeader + `><ActionList>
	  <Action Name="Combo" Type="Sequence">
	    <ActionReference Name="Stand"/>
	  </Action>
	  <Action Name="Stand" Type="Stay">
	    <Animation><Pose Image="/img/a.png" Duration="1"/></Animation>
	  </Action>
	</ActionList></Mascot>`
	behaviorsXML := `<Mascot ` + nsHeader + `><BehaviorList>
	  <Behavior Name="ComboBehavior" Action="Combo"/>
	</BehaviorList></Mascot>`

	res, _ := mustConvert(t, actionsXML, behaviorsXML)

	keys := res.Actions.Keys()
	require.Len(t, keys, 2)
	assert.Equal(t, "Stand", keys[0])
	assert.Equal(t, "Combo", keys[1])
}

func TestConvertWarnsWhenRequiredBehaviorsAreMissing(t *testing.T) {
	actionsXML := `<Mascot ` + nsHeader + `><ActionList>
	  <Action Name="Stand" Type="Stay">
	    <Animation><Pose Image="/img/a.png" Duration="1"/></Animation>
	  </Action>
	</ActionList></Mascot>`
	behaviorsXML := `<Mascot ` + nsHeader + `><BehaviorList>
	  <Behavior Name="StandBehavior" Action="Stand"/>
	</BehaviorList></Mascot>`

	_, warnings := mustConvert(t, actionsXML, behaviorsXML)

	var messages []string
	for _, w := range warnings {
		messages = append(messages, w.Message)
	}
	assert.Contains(t, messages, "Fall behavior not defined; it is required for execution and will not load")
	assert.Contains(t, messages, "Dragged behavior not defined; it is required for execution and will not load")
	assert.Contains(t, messages, "Thrown behavior not defined; it is required for execution and will not load")
}

func TestConvertActionReferencingUndefinedActionFails(t *testing.T) {
	actionsXML := `<Mascot ` + nsHeader + `><ActionList></ActionList></Mascot>`
	behaviorsXML := `<Mascot ` + nsHeader + `><BehaviorList>
	  <Behavior Name="GhostBehavior" Action="NoSuchAction"/>
	</BehaviorList></Mascot>`

	_, _, err := Convert([]byte(actionsXML), []byte(behaviorsXML))
	require.Error(t, err)
}
